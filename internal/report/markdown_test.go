package report

import (
	"strings"
	"testing"
	"time"

	"github.com/mednote-ai/mednote/internal/stock"
)

func TestBuildMarkdownIncludesCoreSections(t *testing.T) {
	rep := Empty("")
	rep.PatientName = "Ahmed"
	rep.ChiefComplaint = "fatigue for 2 days"
	rep.VitalSigns = map[string]any{"blood_pressure": "140/90", "heart_rate": "88"}
	alt := "dapagliflozin (same class SGLT2 inhibitor)"
	rep.MedicationPlan = []Medication{{
		Name:        "Empagliflozin",
		Dose:        "10mg",
		Frequency:   "once daily",
		StockStatus: &stock.Status{InStock: false, Alternative: &alt},
	}}
	rep.FollowUp = "Review in 2 weeks"

	md := BuildMarkdown(rep, Meta{DoctorName: "Dr. Nayef", GeneratedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})

	for _, want := range []string{
		"# Consultation Report",
		"- Patient: Ahmed",
		"- Physician: Dr. Nayef",
		"## Chief Complaint",
		"fatigue for 2 days",
		"Blood Pressure: 140/90",
		"## Medication Plan",
		"**out of stock**",
		"dapagliflozin (same class SGLT2 inhibitor)",
		"## Follow-up",
		Disclaimer,
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestBuildMarkdownVitalOrderPrecedesExtras(t *testing.T) {
	rep := Empty("")
	rep.VitalSigns = map[string]any{"blood_pressure": "120/80", "ankle_edema": "none"}
	md := BuildMarkdown(rep, Meta{})
	bp := strings.Index(md, "Blood Pressure")
	extra := strings.Index(md, "Ankle Edema")
	if bp < 0 || extra < 0 || bp > extra {
		t.Fatalf("expected charting-order vitals before extras (bp=%d extra=%d)", bp, extra)
	}
}

func TestBuildMarkdownEmptyPlanSaysSo(t *testing.T) {
	md := BuildMarkdown(Empty("Transcript was empty"), Meta{})
	if !strings.Contains(md, "No medications prescribed.") {
		t.Fatalf("expected empty-plan note:\n%s", md)
	}
	if !strings.Contains(md, "Transcript was empty") {
		t.Fatal("expected the diagnostic to render as the chief complaint")
	}
}

func TestSanitizeLineFlattensNewlinesAndPipes(t *testing.T) {
	got := sanitizeLine("line one\nline | two")
	if got != "line one line / two" {
		t.Fatalf("sanitizeLine = %q", got)
	}
}
