package models

// FieldSpec describes one input field of a program form.
type FieldSpec struct {
	Name     string   `json:"name"     validate:"required"`
	Type     string   `json:"type"     validate:"required"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Default  string   `json:"default,omitempty"`
	ReadOnly bool     `json:"readonly,omitempty"`
}

// SectionSpec groups related fields of a form.
type SectionSpec struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []FieldSpec `json:"fields"`
}

// FormSpec is the full specification of one program form as served to the
// renderer and consumed by the validation engine.
type FormSpec struct {
	FormID         string        `json:"formId"`
	Type           string        `json:"type"`
	Title          string        `json:"title"`
	Sections       []SectionSpec `json:"sections"`
	RequiredFields []string      `json:"requiredFields"`
}

// Fields flattens every section into a single field list.
func (f *FormSpec) Fields() []FieldSpec {
	var fields []FieldSpec

	for _, section := range f.Sections {
		fields = append(fields, section.Fields...)
	}

	return fields
}

// ValidationResult is the outcome of validating a form document.
type ValidationResult struct {
	IsValid  bool                `json:"isValid"`
	Errors   map[string][]string `json:"errors"`
	Warnings []string            `json:"warnings"`
	Summary  ValidationSummary   `json:"summary"`
}

// ValidationSummary gives per-document counts for the validation report.
type ValidationSummary struct {
	TotalFields   int `json:"totalFields"`
	ValidFields   int `json:"validFields"`
	InvalidFields int `json:"invalidFields"`
}
