package otelhelper

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SetError records a journey failure on the span. Callers pass the hciflow
// attribute keys (user, step, agent) relevant to where the failure happened.
func SetError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.AddEvent("journey_error", trace.WithAttributes(
		attrs...,
	))
}
