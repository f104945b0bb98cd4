// Package web provides HTTP request and response types for the journey API.
package web

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// StartJourneyRequest represents the request body for starting a journey.
type StartJourneyRequest struct {
	UserID  string         `json:"userId"            validate:"required,min=1"`
	Intent  string         `json:"intent"            validate:"required,min=1"`
	Context map[string]any `json:"context,omitempty"`
}

// ExecuteStepRequest represents the request body for advancing a journey by
// one step. StepIndex is a pointer so zero is distinguishable from absent.
type ExecuteStepRequest struct {
	StepIndex *int `json:"stepIndex" validate:"required,min=0"`
}

// GenerateFormRequest represents the request body for generating a form
// specification.
type GenerateFormRequest struct {
	FormType string `json:"formType" validate:"required"`
}

// ValidateFormRequest represents the request body for validating submitted
// form data.
type ValidateFormRequest struct {
	FormType string         `json:"formType" validate:"required"`
	Data     map[string]any `json:"data"     validate:"required"`
}
