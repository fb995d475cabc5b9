package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mednote-ai/mednote/internal/report"
	"github.com/mednote-ai/mednote/internal/stock"
)

type fakeLLMCaller struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeLLMCaller) GenerateJSON(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestSummarizer(caller LLMCaller) *Summarizer {
	return New(caller, stock.Default(), zerolog.Nop())
}

func TestGenerateReportNotConfigured(t *testing.T) {
	s := newTestSummarizer(nil)
	rep := s.GenerateReport(context.Background(), "patient reports fatigue", LanguageEnglish)
	if !strings.Contains(rep.ChiefComplaint, "not configured") {
		t.Fatalf("chief_complaint = %q", rep.ChiefComplaint)
	}
	if rep.PatientName != report.PatientNameDefault {
		t.Fatalf("patient_name = %q", rep.PatientName)
	}
}

func TestGenerateReportEmptyTranscriptSkipsNetworkCall(t *testing.T) {
	caller := &fakeLLMCaller{response: "{}"}
	s := newTestSummarizer(caller)
	rep := s.GenerateReport(context.Background(), "   \n\t  ", LanguageEnglish)
	if caller.calls != 0 {
		t.Fatalf("expected no llm call, got %d", caller.calls)
	}
	if !strings.Contains(rep.ChiefComplaint, "empty") {
		t.Fatalf("chief_complaint = %q", rep.ChiefComplaint)
	}
}

func TestGenerateReportTransportErrorDegrades(t *testing.T) {
	caller := &fakeLLMCaller{err: errors.New("status 503: overloaded")}
	s := newTestSummarizer(caller)
	rep := s.GenerateReport(context.Background(), "patient reports fatigue", LanguageEnglish)
	if caller.calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", caller.calls)
	}
	if !strings.Contains(rep.ChiefComplaint, "status 503") {
		t.Fatalf("chief_complaint = %q", rep.ChiefComplaint)
	}
}

func TestGenerateReportAttachesStockToPlan(t *testing.T) {
	caller := &fakeLLMCaller{response: `{"medication_plan": [{"name": "Empagliflozin"}]}`}
	s := newTestSummarizer(caller)
	rep := s.GenerateReport(context.Background(), "start empagliflozin", LanguageEnglish)
	if len(rep.MedicationPlan) != 1 {
		t.Fatalf("medication_plan = %+v", rep.MedicationPlan)
	}
	status := rep.MedicationPlan[0].StockStatus
	if status == nil || status.InStock {
		t.Fatalf("expected out-of-stock status, got %+v", status)
	}
	if status.Alternative == nil || *status.Alternative != "dapagliflozin (same class SGLT2 inhibitor)" {
		t.Fatalf("unexpected alternative: %v", status.Alternative)
	}
}

func TestGenerateReportUnparseableResponse(t *testing.T) {
	caller := &fakeLLMCaller{response: "Sorry, I cannot help with that."}
	s := newTestSummarizer(caller)
	rep := s.GenerateReport(context.Background(), "patient reports fatigue", LanguageEnglish)
	if rep.ChiefComplaint != report.ParseFailureDiagnostic {
		t.Fatalf("chief_complaint = %q", rep.ChiefComplaint)
	}
}

func TestGenerateReportSendsTranscriptAndLanguage(t *testing.T) {
	caller := &fakeLLMCaller{response: "{}"}
	s := newTestSummarizer(caller)
	s.GenerateReport(context.Background(), "the patient is here", LanguageArabic)
	if !strings.Contains(caller.lastUser, "the patient is here") {
		t.Fatalf("user prompt missing transcript: %q", caller.lastUser)
	}
	if !strings.Contains(caller.lastSystem, "Arabic") {
		t.Fatal("system prompt missing Arabic directive")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]Language{
		"arabic":  LanguageArabic,
		" ARABIC": LanguageArabic,
		"english": LanguageEnglish,
		"french":  LanguageEnglish,
		"":        LanguageEnglish,
	}
	for in, want := range cases {
		if got := NormalizeLanguage(in); got != want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
