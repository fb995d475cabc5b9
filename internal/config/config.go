// Package config resolves runtime configuration from the environment, with a
// best-effort .env load for local development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime knob for the service and the CLI.
//
// AnthropicAPIKey and TranscribeAPIKey may be empty: the pipeline treats a
// missing credential as a handled "not configured" state, never a startup
// failure.
type Config struct {
	AnthropicAPIKey string
	LLMModel        string

	TranscribeBaseURL string
	TranscribeAPIKey  string
	TranscribeModel   string

	ListenAddr      string
	WebDir          string
	FormularyDBPath string
	DoctorName      string

	LogFormat    string // "text" or "json"
	OTLPEndpoint string // empty disables tracing export
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AnthropicAPIKey:   strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")),
		LLMModel:          strings.TrimSpace(os.Getenv("MEDNOTE_LLM_MODEL")),
		TranscribeBaseURL: envOr("MEDNOTE_TRANSCRIBE_BASE_URL", "https://api.openai.com/v1"),
		TranscribeAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		TranscribeModel:   strings.TrimSpace(os.Getenv("MEDNOTE_TRANSCRIBE_MODEL")),
		ListenAddr:        envOr("MEDNOTE_LISTEN_ADDR", ":8080"),
		WebDir:            envOr("MEDNOTE_WEB_DIR", "web"),
		FormularyDBPath:   strings.TrimSpace(os.Getenv("MEDNOTE_FORMULARY_DB")),
		DoctorName:        envOr("MEDNOTE_DOCTOR_NAME", ""),
		LogFormat:         envOr("LOG_FORMAT", "text"),
		OTLPEndpoint:      strings.TrimSpace(os.Getenv("OTLP_ENDPOINT")),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
