package report

import (
	"encoding/json"
	"strings"
)

// Normalizer turns raw model text into a fully-populated Report. It never
// fails: unparseable input degrades to the canonical empty report with a
// diagnostic chief complaint.
type Normalizer struct {
	resolver StockResolver
}

func NewNormalizer(resolver StockResolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

// Normalize parses rawModelText into the fixed report schema.
//
// Parsing is attempted strictly first, then against the span between the
// first '{' and the last '}' — models often wrap the JSON in prose or code
// fences. Every top-level key is coalesced with its default individually; a
// missing or null nested object becomes an empty map as a whole, it is not
// merged per subfield. Stock status is recomputed for every planned
// medication regardless of what the model returned.
func (n *Normalizer) Normalize(rawModelText string) Report {
	data, ok := parseObject(rawModelText)
	if !ok {
		return Empty(ParseFailureDiagnostic)
	}

	rep := Report{
		ConversationOverview:           objectField(data, "conversation_overview"),
		PatientName:                    textField(data, "patient_name", PatientNameDefault),
		Demographics:                   objectField(data, "demographics"),
		ChiefComplaint:                 textField(data, "chief_complaint", ""),
		HistoryOfPresentIllness:        textField(data, "history_of_present_illness", ""),
		PastMedicalHistory:             objectField(data, "past_medical_history"),
		PastSurgicalHistory:            textField(data, "past_surgical_history", ""),
		CurrentMedications:             medicationField(data, "current_medications"),
		Allergies:                      objectField(data, "allergies"),
		VitalSigns:                     objectField(data, "vital_signs"),
		PhysicalExamination:            textField(data, "physical_examination", ""),
		LabResults:                     objectField(data, "lab_results"),
		SocialHistory:                  objectField(data, "social_history"),
		FamilyHistory:                  objectField(data, "family_history"),
		ClinicalAssessment:             objectField(data, "clinical_assessment"),
		RecommendedWorkup:              textListField(data, "recommended_workup"),
		MedicationPlan:                 medicationField(data, "medication_plan"),
		SafetyChecks:                   textListField(data, "safety_checks"),
		ContraindicationsChecked:       textListField(data, "contraindications_checked"),
		AlternativeIfContraindicated:   textListField(data, "alternative_if_contraindicated"),
		FollowUp:                       textField(data, "follow_up", ""),
		DoctorAdvisoryMissingQuestions: textListField(data, "doctor_advisory_missing_questions"),
		PatientReport:                  textField(data, "patient_report", ""),
		PatientProfileUpdates:          objectField(data, "patient_profile_updates"),
	}

	for i := range rep.MedicationPlan {
		status := n.resolver.Resolve(rep.MedicationPlan[i].Name)
		rep.MedicationPlan[i].StockStatus = &status
	}
	return rep
}

// parseObject attempts a strict JSON-object parse, then the brace-span
// recovery parse.
func parseObject(raw string) (map[string]any, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err == nil && data != nil {
		return data, true
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	data = nil
	if err := json.Unmarshal([]byte(raw[start:end+1]), &data); err != nil || data == nil {
		return nil, false
	}
	return data, true
}

func objectField(data map[string]any, key string) map[string]any {
	if m, ok := data[key].(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

func textField(data map[string]any, key, fallback string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func textListField(data map[string]any, key string) []string {
	items, ok := data[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func medicationField(data map[string]any, key string) []Medication {
	items, ok := data[key].([]any)
	if !ok {
		return []Medication{}
	}
	out := make([]Medication, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Medication{
			Name:           textField(entry, "name", ""),
			Dose:           textField(entry, "dose", ""),
			Frequency:      textField(entry, "frequency", ""),
			Duration:       textField(entry, "duration", ""),
			Instructions:   textField(entry, "instructions", ""),
			GuidelineBasis: textField(entry, "guideline_basis", ""),
		})
	}
	return out
}
