// mednote-report generates a consultation report from a transcript file
// without running the server: the offline/batch path for already-transcribed
// consultations.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mednote-ai/mednote/internal/config"
	"github.com/mednote-ai/mednote/internal/logging"
	"github.com/mednote-ai/mednote/internal/report"
	"github.com/mednote-ai/mednote/internal/stock"
	"github.com/mednote-ai/mednote/internal/summarizer"
)

func main() {
	transcriptPath := flag.String("transcript", "", "Path to transcript text file (required)")
	language := flag.String("language", "english", "Report language: english or arabic")
	jsonPath := flag.String("json-output", "", "Path to write the report JSON (defaults to stdout)")
	markdownPath := flag.String("markdown-output", "", "Optional path to write the rendered markdown")
	flag.Parse()

	cfg := config.Load()
	log := logging.Setup(cfg.LogFormat)

	if *transcriptPath == "" {
		log.Fatal().Msg("missing required -transcript")
	}
	transcript, err := os.ReadFile(*transcriptPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read transcript")
	}

	var caller summarizer.LLMCaller
	if cfg.AnthropicAPIKey != "" {
		caller = summarizer.NewAnthropicCaller(cfg.AnthropicAPIKey, cfg.LLMModel)
	}
	summ := summarizer.New(caller, stock.Default(), log)

	lang := summarizer.NormalizeLanguage(*language)
	rep := summ.GenerateReport(context.Background(), string(transcript), lang)

	blob, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode report")
	}
	if *jsonPath == "" {
		fmt.Println(string(blob))
	} else if err := os.WriteFile(*jsonPath, blob, 0o644); err != nil {
		log.Fatal().Err(err).Msg("write report json")
	}

	if *markdownPath != "" {
		md := report.BuildMarkdown(rep, report.Meta{
			DoctorName:  cfg.DoctorName,
			GeneratedAt: time.Now(),
			Language:    string(lang),
		})
		if err := os.WriteFile(*markdownPath, []byte(md), 0o644); err != nil {
			log.Fatal().Err(err).Msg("write markdown")
		}
	}
}
