// Package transcribe is a thin client for a Whisper-compatible
// speech-to-text endpoint. The rest of the system only ever sees its text
// output, or an error.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultModel = "whisper-1"

// ErrNotConfigured reports a missing transcription credential.
var ErrNotConfigured = errors.New("transcription API key not configured")

var tracer = otel.Tracer("github.com/mednote-ai/mednote/internal/transcribe")

type Transcriber struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// New builds a transcriber against an OpenAI-compatible /audio/transcriptions
// endpoint. baseURL is the API root, e.g. "https://api.openai.com/v1".
func New(baseURL, apiKey, model string) *Transcriber {
	if model == "" {
		model = DefaultModel
	}
	return &Transcriber{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads one audio recording and returns its transcript text.
// language is an optional ISO hint ("ar" for Arabic consultations); empty
// lets the provider auto-detect.
func (t *Transcriber) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error) {
	ctx, span := tracer.Start(ctx, "transcribe.Transcribe")
	defer span.End()
	span.SetAttributes(attribute.String("audio.filename", filename))

	if t.apiKey == "" {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	if err := mw.WriteField("model", t.model); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return "", fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read transcription response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var out transcriptionResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	return out.Text, nil
}
