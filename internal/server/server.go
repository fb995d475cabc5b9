// Package server exposes the consultation review UI and its JSON API.
package server

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mednote-ai/mednote/internal/report"
	"github.com/mednote-ai/mednote/internal/summarizer"
)

const maxAudioUploadBytes = 25 << 20

// ReportGenerator produces a normalized report from a transcript. It never
// fails; degraded results carry their diagnostic inside the report.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, transcript string, lang summarizer.Language) report.Report
}

// AudioTranscriber converts an uploaded recording into plain text.
type AudioTranscriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error)
}

// PDFRenderer turns report markdown into a printable document.
type PDFRenderer interface {
	Render(ctx context.Context, markdown string) ([]byte, error)
}

// ReportEnvelope is the API response for one generated report.
type ReportEnvelope struct {
	ConsultationID string        `json:"consultation_id"`
	Language       string        `json:"language"`
	GeneratedAt    time.Time     `json:"generated_at"`
	Report         report.Report `json:"report"`
	ReportMarkdown string        `json:"report_markdown"`
	Disclaimer     string        `json:"disclaimer"`
}

type Server struct {
	generator   ReportGenerator
	transcriber AudioTranscriber
	pdfRenderer PDFRenderer
	webDir      string
	doctorName  string
	log         zerolog.Logger
}

// NewServer wires the handler tree. transcriber may be nil when no
// speech-to-text credential is configured; the endpoint then reports that
// state instead of failing at startup.
func NewServer(generator ReportGenerator, transcriber AudioTranscriber, pdfRenderer PDFRenderer, webDir, doctorName string, log zerolog.Logger) http.Handler {
	s := &Server{
		generator:   generator,
		transcriber: transcriber,
		pdfRenderer: pdfRenderer,
		webDir:      webDir,
		doctorName:  doctorName,
		log:         log,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/transcribe", s.handleTranscribe)
	mux.HandleFunc("/api/report", s.handleReport)
	mux.HandleFunc("/api/report-pdf", s.handleReportPDF)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", s.handleRoot)
	return withMetrics(mux)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	if r.URL.Path == "/" || r.URL.Path == "/index.html" {
		http.ServeFile(w, r, filepath.Join(s.webDir, "index.html"))
		return
	}
	path := filepath.Join(s.webDir, filepath.Clean(r.URL.Path))
	if _, err := fs.Stat(os.DirFS(s.webDir), strings.TrimPrefix(filepath.Clean(r.URL.Path), "/")); err == nil {
		http.ServeFile(w, r, path)
		return
	}
	http.NotFound(w, r)
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.transcriber == nil {
		transcriptions.WithLabelValues("not_configured").Inc()
		writeError(w, http.StatusServiceUnavailable, "transcription is not configured")
		return
	}
	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart audio upload")
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing audio file field")
		return
	}
	defer file.Close()

	hint := ""
	if summarizer.NormalizeLanguage(r.FormValue("language")) == summarizer.LanguageArabic {
		hint = "ar"
	}
	text, err := s.transcriber.Transcribe(r.Context(), header.Filename, file, hint)
	if err != nil {
		transcriptions.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("filename", header.Filename).Msg("transcription failed")
		writeError(w, http.StatusBadGateway, "transcription failed: "+err.Error())
		return
	}
	transcriptions.WithLabelValues("ok").Inc()
	writeJSON(w, 200, map[string]any{"transcript": text})
}

type reportRequest struct {
	Transcript string `json:"transcript"`
	Language   string `json:"language"`
}

// handleReport always answers 200 with a renderable envelope: degraded
// pipelines surface their diagnostic inside the report, not as an HTTP
// error. Only a malformed request body is rejected.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req reportRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lang := summarizer.NormalizeLanguage(req.Language)
	rep := s.generator.GenerateReport(r.Context(), req.Transcript, lang)
	if rep.ChiefComplaint == report.ParseFailureDiagnostic {
		reportParseFailures.Inc()
	}
	reportsGenerated.WithLabelValues(string(lang)).Inc()

	env := ReportEnvelope{
		ConsultationID: uuid.NewString(),
		Language:       string(lang),
		GeneratedAt:    time.Now().UTC(),
		Report:         rep,
		Disclaimer:     report.Disclaimer,
	}
	env.ReportMarkdown = report.BuildMarkdown(rep, report.Meta{
		DoctorName:  s.doctorName,
		GeneratedAt: env.GeneratedAt,
		Language:    env.Language,
	})
	writeJSON(w, 200, env)
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.pdfRenderer == nil {
		writeError(w, http.StatusServiceUnavailable, "pdf rendering is not available")
		return
	}
	var env ReportEnvelope
	if err := json.NewDecoder(io.LimitReader(r.Body, 4<<20)).Decode(&env); err != nil {
		writeError(w, http.StatusBadRequest, "invalid report envelope")
		return
	}
	markdown := env.ReportMarkdown
	if strings.TrimSpace(markdown) == "" {
		markdown = report.BuildMarkdown(env.Report, report.Meta{
			DoctorName:  s.doctorName,
			GeneratedAt: env.GeneratedAt,
			Language:    env.Language,
		})
	}
	pdf, err := s.pdfRenderer.Render(r.Context(), markdown)
	if err != nil {
		s.log.Error().Err(err).Msg("pdf render failed")
		writeError(w, http.StatusInternalServerError, "pdf render failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="consultation-report.pdf"`)
	w.WriteHeader(200)
	_, _ = w.Write(pdf)
}
