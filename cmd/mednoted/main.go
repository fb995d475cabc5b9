package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mednote-ai/mednote/internal/config"
	"github.com/mednote-ai/mednote/internal/logging"
	"github.com/mednote-ai/mednote/internal/observability"
	"github.com/mednote-ai/mednote/internal/server"
	"github.com/mednote-ai/mednote/internal/stock"
	"github.com/mednote-ai/mednote/internal/summarizer"
	"github.com/mednote-ai/mednote/internal/transcribe"
)

func main() {
	cfg := config.Load()
	log := logging.Setup(cfg.LogFormat)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := observability.SetupTracing(ctx, "mednoted", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing setup failed")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	catalog := loadCatalog(cfg, log)

	var caller summarizer.LLMCaller
	if cfg.AnthropicAPIKey != "" {
		caller = summarizer.NewAnthropicCaller(cfg.AnthropicAPIKey, cfg.LLMModel)
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set; report generation will return empty reports")
	}
	summ := summarizer.New(caller, catalog, log)

	var transcriber server.AudioTranscriber
	if cfg.TranscribeAPIKey != "" {
		transcriber = transcribe.New(cfg.TranscribeBaseURL, cfg.TranscribeAPIKey, cfg.TranscribeModel)
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set; audio transcription disabled")
	}

	handler := server.NewServer(summ, transcriber, server.NewChromiumPDFRenderer(), cfg.WebDir, cfg.DoctorName, log)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.ListenAddr).Msg("mednoted listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("mednoted stopped")
}

// loadCatalog prefers the sqlite formulary when configured, seeding it with
// the built-in catalog on first run; otherwise the built-in catalog is used
// directly.
func loadCatalog(cfg config.Config, log zerolog.Logger) *stock.Catalog {
	if cfg.FormularyDBPath == "" {
		return stock.Default()
	}
	formulary, err := stock.OpenFormulary(cfg.FormularyDBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.FormularyDBPath).Msg("open formulary")
	}
	defer formulary.Close()
	if err := formulary.SeedIfEmpty(stock.Default()); err != nil {
		log.Fatal().Err(err).Msg("seed formulary")
	}
	catalog, err := formulary.LoadCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("load formulary")
	}
	log.Info().Str("path", cfg.FormularyDBPath).Int("medications", len(catalog.Entries())).Msg("formulary loaded")
	return catalog
}
