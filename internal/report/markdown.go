package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Disclaimer is appended to every rendered report.
const Disclaimer = "This report was generated from an automated transcription and AI extraction. " +
	"It is a documentation aid, not a diagnostic authority. " +
	"All findings and medication decisions must be verified by the treating physician."

// Meta carries the presentation context that is not part of the report
// schema itself.
type Meta struct {
	DoctorName  string
	GeneratedAt time.Time
	Language    string
}

// vitals are rendered in clinical charting order; anything else the model
// extracted follows alphabetically.
var vitalOrder = []string{"blood_pressure", "heart_rate", "respiratory_rate", "temperature", "oxygen_saturation"}

// BuildMarkdown renders the report as compact single-page markdown for the
// review UI and the PDF renderer.
func BuildMarkdown(rep Report, meta Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Consultation Report\n\n")
	fmt.Fprintf(&b, "- Patient: %s\n", orDash(rep.PatientName))
	if meta.DoctorName != "" {
		fmt.Fprintf(&b, "- Physician: %s\n", meta.DoctorName)
	}
	when := meta.GeneratedAt
	if when.IsZero() {
		when = time.Now()
	}
	fmt.Fprintf(&b, "- Date: %s\n\n", when.Format("January 2, 2006"))

	fmt.Fprintf(&b, "## Chief Complaint\n\n%s\n\n", orDash(rep.ChiefComplaint))

	if rep.HistoryOfPresentIllness != "" {
		fmt.Fprintf(&b, "## History of Present Illness\n\n%s\n\n", sanitizeLine(rep.HistoryOfPresentIllness))
	}

	appendMapSection(&b, "Demographics", rep.Demographics, nil)
	appendMapSection(&b, "Vital Signs", rep.VitalSigns, vitalOrder)

	if len(rep.CurrentMedications) > 0 {
		fmt.Fprintf(&b, "## Current Medications\n\n")
		fmt.Fprintf(&b, "| Medication | Dose | Frequency | Duration |\n|---|---|---|---|\n")
		for _, m := range rep.CurrentMedications {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", orDash(m.Name), orDash(m.Dose), orDash(m.Frequency), orDash(m.Duration))
		}
		b.WriteString("\n")
	}

	appendMapSection(&b, "Past Medical History", rep.PastMedicalHistory, nil)
	if rep.PastSurgicalHistory != "" {
		fmt.Fprintf(&b, "## Past Surgical History\n\n%s\n\n", sanitizeLine(rep.PastSurgicalHistory))
	}
	appendMapSection(&b, "Allergies", rep.Allergies, nil)
	if rep.PhysicalExamination != "" {
		fmt.Fprintf(&b, "## Physical Examination\n\n%s\n\n", sanitizeLine(rep.PhysicalExamination))
	}
	appendMapSection(&b, "Clinical Assessment", rep.ClinicalAssessment, []string{"suspected_diagnosis", "differential_diagnosis", "reasoning"})

	appendListSection(&b, "Recommended Workup", rep.RecommendedWorkup)

	fmt.Fprintf(&b, "## Medication Plan\n\n")
	if len(rep.MedicationPlan) == 0 {
		fmt.Fprintf(&b, "No medications prescribed.\n\n")
	} else {
		fmt.Fprintf(&b, "| Medication | Dose | Frequency | Duration | Stock |\n|---|---|---|---|---|\n")
		for _, m := range rep.MedicationPlan {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				orDash(m.Name), orDash(m.Dose), orDash(m.Frequency), orDash(m.Duration), stockCell(m))
		}
		b.WriteString("\n")
		for _, m := range rep.MedicationPlan {
			if m.StockStatus != nil && !m.StockStatus.InStock && m.StockStatus.Alternative != nil {
				fmt.Fprintf(&b, "- **Out of stock:** %s — suggested alternative: %s\n", orDash(m.Name), *m.StockStatus.Alternative)
			}
		}
		b.WriteString("\n")
	}

	appendListSection(&b, "Safety Checks", rep.SafetyChecks)
	appendListSection(&b, "Contraindications Checked", rep.ContraindicationsChecked)
	appendListSection(&b, "Questions to Complete the Assessment", rep.DoctorAdvisoryMissingQuestions)

	if rep.FollowUp != "" {
		fmt.Fprintf(&b, "## Follow-up\n\n%s\n\n", sanitizeLine(rep.FollowUp))
	}
	if rep.PatientReport != "" {
		fmt.Fprintf(&b, "## Patient Summary\n\n%s\n\n", sanitizeLine(rep.PatientReport))
	}

	fmt.Fprintf(&b, "---\n\n*%s*\n", Disclaimer)
	return b.String()
}

func appendMapSection(b *strings.Builder, title string, m map[string]any, preferredOrder []string) {
	lines := mapLines(m, preferredOrder)
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, line := range lines {
		fmt.Fprintf(b, "- %s\n", line)
	}
	b.WriteString("\n")
}

func appendListSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", sanitizeLine(item))
	}
	b.WriteString("\n")
}

func mapLines(m map[string]any, preferredOrder []string) []string {
	var lines []string
	seen := map[string]bool{}
	emit := func(key string) {
		v, ok := m[key]
		if !ok || seen[key] {
			return
		}
		seen[key] = true
		text := valueText(v)
		if text == "" {
			return
		}
		lines = append(lines, fmt.Sprintf("%s: %s", titleCase(key), text))
	}
	for _, key := range preferredOrder {
		emit(key)
	}
	rest := make([]string, 0, len(m))
	for key := range m {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		emit(key)
	}
	return lines
}

func valueText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return sanitizeLine(t)
	case bool:
		if t {
			return "yes"
		}
		return "no"
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := valueText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		return strings.Join(mapLines(t, nil), "; ")
	default:
		return sanitizeLine(fmt.Sprintf("%v", t))
	}
}

func stockCell(m Medication) string {
	if m.StockStatus == nil || m.StockStatus.InStock {
		return "in stock"
	}
	return "**out of stock**"
}

func titleCase(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return sanitizeLine(s)
}

func sanitizeLine(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/"))
}
