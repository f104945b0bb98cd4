package models

import "time"

// ResultKind discriminates the two shapes an agent execution can produce.
type ResultKind string

const (
	// ResultKindStructured means the model returned parseable JSON.
	ResultKindStructured ResultKind = "structured"
	// ResultKindText means the raw text was wrapped in a fallback envelope.
	ResultKindText ResultKind = "text"
)

// TextEnvelope wraps a plain-text model response together with the identity
// of the agent that produced it.
type TextEnvelope struct {
	AgentID      string    `json:"agentId"`
	AgentRole    string    `json:"agentRole"`
	Response     string    `json:"response"`
	Timestamp    time.Time `json:"timestamp"`
	Capabilities []string  `json:"capabilities"`
}

// AgentResult is the outcome of one agent execution. Exactly one of Data or
// Text is set, according to Kind. Consumers must switch on Kind rather than
// assume a shape; a model that stops emitting JSON degrades to the text
// envelope instead of failing.
type AgentResult struct {
	Kind ResultKind    `json:"kind"`
	Data any           `json:"data,omitempty"`
	Text *TextEnvelope `json:"text,omitempty"`
}

// Payload returns the caller-facing value: the parsed document for
// structured results, the envelope for text results.
func (r AgentResult) Payload() any {
	switch r.Kind {
	case ResultKindStructured:
		return r.Data
	case ResultKindText:
		return r.Text
	}

	return nil
}

// Structured builds a structured result.
func Structured(data any) AgentResult {
	return AgentResult{Kind: ResultKindStructured, Data: data}
}

// Unstructured builds a text-fallback result.
func Unstructured(envelope TextEnvelope) AgentResult {
	e := envelope

	return AgentResult{Kind: ResultKindText, Text: &e}
}
