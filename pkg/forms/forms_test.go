package forms

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnrollment() map[string]any {
	return map[string]any{
		"firstName":         "Avery",
		"lastName":          "Moore",
		"ssn":               "123-45-6789",
		"dob":               "1960-04-12",
		"gender":            "Female",
		"primaryPhone":      "919-555-0142",
		"preferredContact":  "Phone",
		"streetAddress":     "12 Maple St",
		"city":              "Durham",
		"state":             "NC",
		"zipCode":           "27701",
		"medicaidNumber":    "MCD-883920",
		"primaryDiagnosis":  "COPD",
		"careLevel":         "Level 2",
		"hasRepresentative": "No",
	}
}

func TestGenerateKnownAndUnknownTypes(t *testing.T) {
	spec := Generate("care_plan")
	require.NotNil(t, spec)
	assert.Equal(t, "care_plan", spec.Type)
	assert.NotEmpty(t, spec.FormID)

	fallback := Generate("no_such_form")
	require.NotNil(t, fallback)
	assert.Equal(t, "participant_enrollment", fallback.Type)
}

func TestGenerateMintsFreshFormIDs(t *testing.T) {
	first := Generate("participant_enrollment")
	second := Generate("participant_enrollment")

	assert.NotEqual(t, first.FormID, second.FormID)
}

func TestKnownFormTypes(t *testing.T) {
	assert.ElementsMatch(t, []string{"participant_enrollment", "care_plan", "fms_authorization"}, KnownFormTypes())
}

func TestValidateAcceptsCompleteEnrollment(t *testing.T) {
	engine := NewEngine(slog.Default())

	result := engine.Validate("participant_enrollment", validEnrollment())
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 15, result.Summary.TotalFields)
	assert.Equal(t, 15, result.Summary.ValidFields)
}

func TestValidateRejectsBadFieldFormats(t *testing.T) {
	engine := NewEngine(slog.Default())

	data := validEnrollment()
	data["ssn"] = "123456789"
	data["zipCode"] = "2770"
	data["email"] = "not-an-email"

	result := engine.Validate("participant_enrollment", data)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "ssn")
	assert.Contains(t, result.Errors, "zipCode")
	assert.Contains(t, result.Errors, "email")
}

func TestValidateRejectsMissingRequiredFields(t *testing.T) {
	engine := NewEngine(slog.Default())

	data := validEnrollment()
	delete(data, "medicaidNumber")

	result := engine.Validate("participant_enrollment", data)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"This field is required."}, result.Errors["medicaidNumber"])
	assert.Contains(t, result.Errors, "_schema")
}

func TestValidateEnrollmentBusinessRules(t *testing.T) {
	engine := NewEngine(slog.Default())

	data := validEnrollment()
	data["dob"] = time.Now().AddDate(-17, 0, 0).Format("2006-01-02")
	data["state"] = "VA"

	result := engine.Validate("participant_enrollment", data)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors["_form"], "Participant must be at least 18 years old.")
	assert.Contains(t, result.Errors["_form"], "HCI-CDS program is only available to North Carolina residents.")
}

func TestValidateCarePlanEffectiveDate(t *testing.T) {
	engine := NewEngine(slog.Default())

	data := map[string]any{
		"participantId":     "P-1001",
		"planEffectiveDate": "2020-01-01",
		"careAdvisor":       "J. Rivera",
		"primaryGoal":       "Maintain independent living",
		"goalTimeframe":     "6 months",
		"weeklyHours":       "20",
		"preferredDays":     []any{"Monday"},
		"preferredTime":     "Morning",
		"monthlyBudget":     "1200",
		"budgetCategories":  []any{"Personal Care"},
	}

	result := engine.Validate("care_plan", data)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors["_form"], "Plan effective date cannot be in the past.")
}

func TestValidateAuthorizationRules(t *testing.T) {
	engine := NewEngine(slog.Default())

	data := map[string]any{
		"participantId":   "P-1001",
		"participantName": "Avery Moore",
		"paFirstName":     "Sam",
		"paLastName":      "Ortiz",
		"paSSN":           "321-54-9876",
		"paAddress":       "9 Oak Ln",
		"paPhone":         "919-555-0199",
		"serviceHours":    "50",
		"hourlyRate":      "5.00",
		"startDate":       "2026-10-01",
		"endDate":         "2026-09-01",
	}

	result := engine.Validate("fms_authorization", data)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors["serviceHours"], "Must be no more than 40.")
	assert.Contains(t, result.Errors["_form"], "Hourly rate cannot be below federal minimum wage.")
	assert.Contains(t, result.Errors["_form"], "Service end date must be after the start date.")
}
