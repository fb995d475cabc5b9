// Package summarizer turns a consultation transcript into a structured
// report with one LLM round trip. Every failure path degrades to the
// canonical empty report; callers always get something renderable.
package summarizer

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mednote-ai/mednote/internal/report"
)

const (
	diagNotConfigured   = "Anthropic API key not configured"
	diagEmptyTranscript = "Transcript was empty"
	diagTransportPrefix = "Error generating report: "
)

var tracer = otel.Tracer("github.com/mednote-ai/mednote/internal/summarizer")

// Summarizer orchestrates prompt building, the model call, and
// normalization. A nil caller means no credential was configured; that is a
// handled state, not an error.
type Summarizer struct {
	caller     LLMCaller
	normalizer *report.Normalizer
	log        zerolog.Logger
}

func New(caller LLMCaller, resolver report.StockResolver, log zerolog.Logger) *Summarizer {
	return &Summarizer{
		caller:     caller,
		normalizer: report.NewNormalizer(resolver),
		log:        log,
	}
}

// NormalizeLanguage maps a free-text language selection onto a Language.
func NormalizeLanguage(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), string(LanguageArabic)) {
		return LanguageArabic
	}
	return LanguageEnglish
}

// GenerateReport converts a transcript into a normalized report. It never
// returns an error: missing credential, empty transcript, transport failure,
// and unparseable output all come back as the canonical empty report with a
// one-line diagnostic in chief_complaint.
func (s *Summarizer) GenerateReport(ctx context.Context, transcript string, lang Language) report.Report {
	ctx, span := tracer.Start(ctx, "summarizer.GenerateReport")
	defer span.End()
	span.SetAttributes(
		attribute.String("report.language", string(lang)),
		attribute.Int("transcript.chars", len(transcript)),
	)

	if s.caller == nil {
		span.SetStatus(codes.Error, diagNotConfigured)
		s.log.Warn().Msg("report requested without a configured LLM credential")
		return report.Empty(diagNotConfigured)
	}
	if strings.TrimSpace(transcript) == "" {
		span.SetStatus(codes.Error, diagEmptyTranscript)
		return report.Empty(diagEmptyTranscript)
	}

	system := buildSystemPrompt(lang)
	started := time.Now()
	raw, err := s.caller.GenerateJSON(ctx, system, userPromptPrefix+transcript)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "llm call failed")
		s.log.Error().Err(err).
			Dur("elapsed", time.Since(started)).
			Msg("llm call failed")
		return report.Empty(diagTransportPrefix + err.Error())
	}
	s.log.Info().
		Dur("elapsed", time.Since(started)).
		Int("response_chars", len(raw)).
		Str("language", string(lang)).
		Msg("llm call complete")

	rep := s.normalizer.Normalize(raw)
	if rep.ChiefComplaint == report.ParseFailureDiagnostic && rep.PatientName == report.PatientNameDefault {
		s.log.Warn().Int("response_chars", len(raw)).Msg("model response was not parseable JSON")
	}
	return rep
}
