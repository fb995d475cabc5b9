// Package report defines the fixed-schema consultation report and the
// defensive normalizer that turns raw model output into one.
package report

import "github.com/mednote-ai/mednote/internal/stock"

// PatientNameDefault is used whenever the model did not extract a name.
const PatientNameDefault = "Not documented"

// ParseFailureDiagnostic goes into chief_complaint when the model response
// could not be parsed as JSON even after recovery.
const ParseFailureDiagnostic = "Failed to parse model response"

// Medication is one entry of current_medications or medication_plan.
// StockStatus is computed against the formulary after extraction; whatever
// the model claims about stock is discarded.
type Medication struct {
	Name           string        `json:"name"`
	Dose           string        `json:"dose"`
	Frequency      string        `json:"frequency"`
	Duration       string        `json:"duration"`
	Instructions   string        `json:"instructions,omitempty"`
	GuidelineBasis string        `json:"guideline_basis,omitempty"`
	StockStatus    *stock.Status `json:"stock_status,omitempty"`
}

// Report is the structured output for one consultation. Every field is
// always present after normalization — consumers branch on emptiness, never
// on absence. Free-form nested objects stay maps so that whatever the model
// extracted round-trips without loss, and a missing nested object defaults
// to an empty map as a whole rather than being merged field by field.
type Report struct {
	ConversationOverview           map[string]any `json:"conversation_overview"`
	PatientName                    string         `json:"patient_name"`
	Demographics                   map[string]any `json:"demographics"`
	ChiefComplaint                 string         `json:"chief_complaint"`
	HistoryOfPresentIllness        string         `json:"history_of_present_illness"`
	PastMedicalHistory             map[string]any `json:"past_medical_history"`
	PastSurgicalHistory            string         `json:"past_surgical_history"`
	CurrentMedications             []Medication   `json:"current_medications"`
	Allergies                      map[string]any `json:"allergies"`
	VitalSigns                     map[string]any `json:"vital_signs"`
	PhysicalExamination            string         `json:"physical_examination"`
	LabResults                     map[string]any `json:"lab_results"`
	SocialHistory                  map[string]any `json:"social_history"`
	FamilyHistory                  map[string]any `json:"family_history"`
	ClinicalAssessment             map[string]any `json:"clinical_assessment"`
	RecommendedWorkup              []string       `json:"recommended_workup"`
	MedicationPlan                 []Medication   `json:"medication_plan"`
	SafetyChecks                   []string       `json:"safety_checks"`
	ContraindicationsChecked       []string       `json:"contraindications_checked"`
	AlternativeIfContraindicated   []string       `json:"alternative_if_contraindicated"`
	FollowUp                       string         `json:"follow_up"`
	DoctorAdvisoryMissingQuestions []string       `json:"doctor_advisory_missing_questions"`
	PatientReport                  string         `json:"patient_report"`
	PatientProfileUpdates          map[string]any `json:"patient_profile_updates"`
}

// Empty returns the canonical empty report. All four failure kinds
// (missing credential, empty transcript, transport error, unparseable
// response) degrade to this shape, with the diagnostic as the chief
// complaint; the result is always renderable.
func Empty(diagnostic string) Report {
	return Report{
		ConversationOverview:           map[string]any{},
		PatientName:                    PatientNameDefault,
		Demographics:                   map[string]any{},
		ChiefComplaint:                 diagnostic,
		HistoryOfPresentIllness:        "",
		PastMedicalHistory:             map[string]any{},
		PastSurgicalHistory:            "",
		CurrentMedications:             []Medication{},
		Allergies:                      map[string]any{},
		VitalSigns:                     map[string]any{},
		PhysicalExamination:            "",
		LabResults:                     map[string]any{},
		SocialHistory:                  map[string]any{},
		FamilyHistory:                  map[string]any{},
		ClinicalAssessment:             map[string]any{},
		RecommendedWorkup:              []string{},
		MedicationPlan:                 []Medication{},
		SafetyChecks:                   []string{},
		ContraindicationsChecked:       []string{},
		AlternativeIfContraindicated:   []string{},
		FollowUp:                       "",
		DoctorAdvisoryMissingQuestions: []string{},
		PatientReport:                  "",
		PatientProfileUpdates:          map[string]any{},
	}
}

// StockResolver looks up availability for a free-text medication name.
// *stock.Catalog satisfies it.
type StockResolver interface {
	Resolve(rawName string) stock.Status
}
