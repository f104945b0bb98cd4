package forms

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nchci/hciflow/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

const dateLayout = "2006-01-02"

// Engine validates form documents in three passes: document shape against a
// JSON schema derived from the form specification, per-field rules, then
// program business rules. A broken document produces a structured report,
// never an error; only an unloadable schema is treated as a system failure.
type Engine struct {
	logger   *slog.Logger
	validate *validator.Validate
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (e *Engine) Validate(formType string, data map[string]any) *models.ValidationResult {
	spec := Generate(formType)

	result := &models.ValidationResult{
		IsValid:  true,
		Errors:   map[string][]string{},
		Warnings: []string{},
		Summary: models.ValidationSummary{
			TotalFields: len(data),
		},
	}

	e.validateSchema(spec, data, result)

	for _, field := range spec.Fields() {
		value, present := data[field.Name]

		errs := e.validateField(field, value, present)
		if len(errs) > 0 {
			result.IsValid = false
			result.Errors[field.Name] = errs

			if present {
				result.Summary.InvalidFields++
			}

			continue
		}

		if present {
			result.Summary.ValidFields++
		}
	}

	if errs := validateBusinessRules(spec.Type, data); len(errs) > 0 {
		result.IsValid = false
		result.Errors["_form"] = errs
	}

	return result
}

// validateSchema checks the document's overall shape. Schema violations are
// collected under the _schema key; they overlap field rules on purpose so a
// malformed document is caught even when a field rule misses it.
func (e *Engine) validateSchema(spec *models.FormSpec, data map[string]any, result *models.ValidationResult) {
	schema := buildSchema(spec)

	report, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(data))
	if err != nil {
		e.logger.Error("Form schema validation failed", "form_type", spec.Type, "error", err)

		result.IsValid = false
		result.Errors["_system"] = []string{"Validation system error. Please try again."}

		return
	}

	if report.Valid() {
		return
	}

	result.IsValid = false

	for _, desc := range report.Errors() {
		result.Errors["_schema"] = append(result.Errors["_schema"], desc.String())
	}
}

func buildSchema(spec *models.FormSpec) map[string]any {
	properties := map[string]any{}

	for _, field := range spec.Fields() {
		switch field.Type {
		case "number", "currency":
			properties[field.Name] = map[string]any{"type": []string{"number", "string"}}
		case "checkbox":
			properties[field.Name] = map[string]any{
				"type":  []string{"array", "string"},
				"items": map[string]any{"type": "string"},
			}
		default:
			properties[field.Name] = map[string]any{"type": "string"}
		}
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   spec.RequiredFields,
	}
}

func (e *Engine) validateField(field models.FieldSpec, value any, present bool) []string {
	text := stringValue(value)

	if !present || text == "" {
		if field.Required {
			return []string{"This field is required."}
		}

		return nil
	}

	var errs []string

	if field.Pattern != "" {
		matched, err := regexp.MatchString(field.Pattern, text)
		if err != nil || !matched {
			errs = append(errs, "Invalid format.")
		}
	}

	if field.Type == "email" {
		if err := e.validate.Var(text, "email"); err != nil {
			errs = append(errs, "Invalid email address.")
		}
	}

	if field.Type == "date" {
		if _, err := time.Parse(dateLayout, text); err != nil {
			errs = append(errs, "Invalid date, expected YYYY-MM-DD.")
		}
	}

	if field.Min != nil || field.Max != nil {
		number, err := strconv.ParseFloat(text, 64)

		switch {
		case err != nil:
			errs = append(errs, "Must be a number.")
		case field.Min != nil && number < *field.Min:
			errs = append(errs, fmt.Sprintf("Must be at least %g.", *field.Min))
		case field.Max != nil && number > *field.Max:
			errs = append(errs, fmt.Sprintf("Must be no more than %g.", *field.Max))
		}
	}

	if len(field.Options) > 0 && field.Type != "checkbox" {
		if !contains(field.Options, text) {
			errs = append(errs, "Value is not one of the allowed options.")
		}
	}

	return errs
}

func validateBusinessRules(formType string, data map[string]any) []string {
	switch formType {
	case "participant_enrollment":
		return validateEnrollmentRules(data)
	case "care_plan":
		return validateCarePlanRules(data)
	case "fms_authorization":
		return validateAuthorizationRules(data)
	}

	return nil
}

func validateEnrollmentRules(data map[string]any) []string {
	var errs []string

	if dob := stringValue(data["dob"]); dob != "" {
		if born, err := time.Parse(dateLayout, dob); err == nil {
			age := ageAt(born, time.Now())
			if age < 18 {
				errs = append(errs, "Participant must be at least 18 years old.")
			}

			if age > 120 {
				errs = append(errs, "Please verify the date of birth.")
			}
		}
	}

	if state := stringValue(data["state"]); state != "" && state != "NC" {
		errs = append(errs, "HCI-CDS program is only available to North Carolina residents.")
	}

	return errs
}

func validateCarePlanRules(data map[string]any) []string {
	var errs []string

	if effective := stringValue(data["planEffectiveDate"]); effective != "" {
		if date, err := time.Parse(dateLayout, effective); err == nil {
			today := time.Now().Truncate(24 * time.Hour)

			if date.Before(today) {
				errs = append(errs, "Plan effective date cannot be in the past.")
			}

			if date.After(today.AddDate(0, 6, 0)) {
				errs = append(errs, "Plan effective date cannot be more than 6 months in the future.")
			}
		}
	}

	return errs
}

func validateAuthorizationRules(data map[string]any) []string {
	var errs []string

	if rate := stringValue(data["hourlyRate"]); rate != "" {
		if value, err := strconv.ParseFloat(rate, 64); err == nil && value < 7.25 {
			errs = append(errs, "Hourly rate cannot be below federal minimum wage.")
		}
	}

	start := stringValue(data["startDate"])
	end := stringValue(data["endDate"])

	if start != "" && end != "" {
		startDate, startErr := time.Parse(dateLayout, start)
		endDate, endErr := time.Parse(dateLayout, end)

		if startErr == nil && endErr == nil && !endDate.After(startDate) {
			errs = append(errs, "Service end date must be after the start date.")
		}
	}

	return errs
}

func ageAt(born, now time.Time) int {
	age := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		age--
	}

	return age
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
