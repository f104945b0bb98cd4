// Package forms generates and validates HCI-CDS program forms.
package forms

import (
	"strings"

	"github.com/google/uuid"
	"github.com/nchci/hciflow/pkg/models"
)

// DefaultFormType is served when an unknown form type is requested, the same
// permissive fallback the workflow catalog applies to intents.
const DefaultFormType = "participant_enrollment"

func floatPtr(v float64) *float64 { return &v }

// Generate returns the specification for the requested form type with a
// freshly minted form id.
func Generate(formType string) *models.FormSpec {
	template, ok := formTemplates()[formType]
	if !ok {
		template = formTemplates()[DefaultFormType]
	}

	spec := template
	spec.FormID = formID(spec.Type)

	return &spec
}

// KnownFormTypes lists every form the generator can produce.
func KnownFormTypes() []string {
	types := make([]string, 0, len(formTemplates()))
	for formType := range formTemplates() {
		types = append(types, formType)
	}

	return types
}

func formID(formType string) string {
	return "HCI-" + strings.ToUpper(strings.ReplaceAll(formType, "_", "-")) + "-" + uuid.NewString()[:8]
}

func formTemplates() map[string]models.FormSpec {
	return map[string]models.FormSpec{
		"participant_enrollment": {
			Type:  "participant_enrollment",
			Title: "HCI-CDS Participant Enrollment (DA-101)",
			Sections: []models.SectionSpec{
				{
					ID:    "personal",
					Title: "Personal Details",
					Fields: []models.FieldSpec{
						{Name: "firstName", Type: "text", Required: true, Label: "First Name"},
						{Name: "lastName", Type: "text", Required: true, Label: "Last Name"},
						{Name: "middleName", Type: "text", Label: "Middle Name"},
						{Name: "ssn", Type: "ssn", Required: true, Label: "Social Security Number", Pattern: `^\d{3}-\d{2}-\d{4}$`},
						{Name: "dob", Type: "date", Required: true, Label: "Date of Birth"},
						{Name: "gender", Type: "select", Required: true, Label: "Gender", Options: []string{"Male", "Female", "Other", "Prefer not to say"}},
					},
				},
				{
					ID:    "contact",
					Title: "Contact Information",
					Fields: []models.FieldSpec{
						{Name: "primaryPhone", Type: "tel", Required: true, Label: "Primary Phone", Pattern: `^\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`},
						{Name: "secondaryPhone", Type: "tel", Label: "Secondary Phone", Pattern: `^\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`},
						{Name: "email", Type: "email", Label: "Email Address"},
						{Name: "preferredContact", Type: "radio", Required: true, Label: "Preferred Contact Method", Options: []string{"Phone", "Email", "Mail"}},
					},
				},
				{
					ID:    "address",
					Title: "Address Information",
					Fields: []models.FieldSpec{
						{Name: "streetAddress", Type: "text", Required: true, Label: "Street Address"},
						{Name: "city", Type: "text", Required: true, Label: "City"},
						{Name: "state", Type: "select", Required: true, Label: "State", Options: []string{"NC"}, Default: "NC"},
						{Name: "zipCode", Type: "text", Required: true, Label: "ZIP Code", Pattern: `^\d{5}(-\d{4})?$`},
					},
				},
				{
					ID:    "eligibility",
					Title: "Eligibility Information",
					Fields: []models.FieldSpec{
						{Name: "medicaidNumber", Type: "text", Required: true, Label: "Medicaid Number"},
						{Name: "primaryDiagnosis", Type: "text", Required: true, Label: "Primary Diagnosis"},
						{Name: "careLevel", Type: "select", Required: true, Label: "Care Level", Options: []string{"Level 1", "Level 2", "Level 3"}},
						{Name: "hasRepresentative", Type: "radio", Required: true, Label: "Do you have a legal representative?", Options: []string{"Yes", "No"}},
					},
				},
			},
			RequiredFields: []string{"firstName", "lastName", "ssn", "dob", "primaryPhone", "streetAddress", "city", "zipCode", "medicaidNumber"},
		},
		"care_plan": {
			Type:  "care_plan",
			Title: "HCI-CDS Care Plan",
			Sections: []models.SectionSpec{
				{
					ID:    "plan",
					Title: "Plan Details",
					Fields: []models.FieldSpec{
						{Name: "participantId", Type: "text", Required: true, Label: "Participant ID", ReadOnly: true},
						{Name: "planEffectiveDate", Type: "date", Required: true, Label: "Plan Effective Date"},
						{Name: "careAdvisor", Type: "text", Required: true, Label: "Assigned Care Advisor"},
					},
				},
				{
					ID:    "goals",
					Title: "Care Goals",
					Fields: []models.FieldSpec{
						{Name: "primaryGoal", Type: "textarea", Required: true, Label: "Primary Care Goal"},
						{Name: "secondaryGoals", Type: "textarea", Label: "Secondary Goals"},
						{Name: "goalTimeframe", Type: "select", Required: true, Label: "Goal Timeframe", Options: []string{"3 months", "6 months", "12 months"}},
					},
				},
				{
					ID:    "schedule",
					Title: "Service Schedule",
					Fields: []models.FieldSpec{
						{Name: "weeklyHours", Type: "number", Required: true, Label: "Weekly Service Hours", Min: floatPtr(1), Max: floatPtr(40)},
						{Name: "preferredDays", Type: "checkbox", Required: true, Label: "Preferred Service Days", Options: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}},
						{Name: "preferredTime", Type: "select", Required: true, Label: "Preferred Time", Options: []string{"Morning", "Afternoon", "Evening", "Flexible"}},
					},
				},
				{
					ID:    "budget",
					Title: "Budget Allocation",
					Fields: []models.FieldSpec{
						{Name: "monthlyBudget", Type: "currency", Required: true, Label: "Monthly Budget Allocation"},
						{Name: "budgetCategories", Type: "checkbox", Required: true, Label: "Budget Categories", Options: []string{"Personal Care", "Homemaker", "Transportation", "Respite Care", "Equipment"}},
					},
				},
			},
			RequiredFields: []string{"participantId", "planEffectiveDate", "careAdvisor", "primaryGoal", "weeklyHours", "monthlyBudget"},
		},
		"fms_authorization": {
			Type:  "fms_authorization",
			Title: "FMS Personal Assistant Authorization",
			Sections: []models.SectionSpec{
				{
					ID:    "participant",
					Title: "Participant",
					Fields: []models.FieldSpec{
						{Name: "participantId", Type: "text", Required: true, Label: "Participant ID", ReadOnly: true},
						{Name: "participantName", Type: "text", Required: true, Label: "Participant Name", ReadOnly: true},
					},
				},
				{
					ID:    "assistant",
					Title: "Personal Assistant",
					Fields: []models.FieldSpec{
						{Name: "paFirstName", Type: "text", Required: true, Label: "PA First Name"},
						{Name: "paLastName", Type: "text", Required: true, Label: "PA Last Name"},
						{Name: "paSSN", Type: "ssn", Required: true, Label: "PA Social Security Number", Pattern: `^\d{3}-\d{2}-\d{4}$`},
						{Name: "paAddress", Type: "text", Required: true, Label: "PA Address"},
						{Name: "paPhone", Type: "tel", Required: true, Label: "PA Phone Number", Pattern: `^\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`},
					},
				},
				{
					ID:    "service",
					Title: "Service Authorization",
					Fields: []models.FieldSpec{
						{Name: "serviceHours", Type: "number", Required: true, Label: "Authorized Hours per Week", Min: floatPtr(1), Max: floatPtr(40)},
						{Name: "hourlyRate", Type: "currency", Required: true, Label: "Hourly Rate"},
						{Name: "startDate", Type: "date", Required: true, Label: "Service Start Date"},
						{Name: "endDate", Type: "date", Required: true, Label: "Service End Date"},
					},
				},
			},
			RequiredFields: []string{"participantId", "paFirstName", "paLastName", "paSSN", "serviceHours", "hourlyRate", "startDate"},
		},
	}
}
