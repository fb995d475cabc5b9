package summarizer

import (
	"strings"
	"testing"
)

func TestBuildSystemPromptLanguageDirective(t *testing.T) {
	en := buildSystemPrompt(LanguageEnglish)
	if !strings.Contains(en, "Generate ALL report sections in English.") {
		t.Fatal("english prompt missing language directive")
	}
	ar := buildSystemPrompt(LanguageArabic)
	if !strings.Contains(ar, "Generate ALL report sections in Arabic") {
		t.Fatal("arabic prompt missing language directive")
	}
}

func TestBuildSystemPromptDescribesEverySchemaKey(t *testing.T) {
	prompt := buildSystemPrompt(LanguageEnglish)
	for _, key := range []string{
		"conversation_overview", "patient_name", "demographics", "chief_complaint",
		"history_of_present_illness", "past_medical_history", "past_surgical_history",
		"current_medications", "allergies", "vital_signs", "physical_examination",
		"lab_results", "social_history", "family_history", "clinical_assessment",
		"recommended_workup", "medication_plan", "safety_checks",
		"contraindications_checked", "alternative_if_contraindicated", "follow_up",
		"doctor_advisory_missing_questions", "patient_report",
	} {
		if !strings.Contains(prompt, `"`+key+`"`) {
			t.Fatalf("prompt missing schema key %q", key)
		}
	}
}
