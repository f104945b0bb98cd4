package catalog

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownIntents(t *testing.T) {
	c := New(slog.Default())

	tests := []struct {
		intent string
		steps  int
		forms  []string
	}{
		{"participant_onboarding", 3, []string{"DA-101", "participant_enrollment", "care_plan"}},
		{"care_advisor_certification", 3, []string{"advisor_credentials", "supervision_plan"}},
		{"fms_vendor_setup", 3, []string{"vendor_contract", "technical_specs"}},
		{"quality_assurance_audit", 3, []string{"qa_checklist", "audit_findings", "improvement_plan"}},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			definition := c.Resolve(tt.intent)
			require.NotNil(t, definition)
			assert.Equal(t, tt.intent, definition.ID)
			assert.Len(t, definition.Steps, tt.steps)
			assert.Equal(t, tt.forms, definition.RequiredForms)
		})
	}
}

func TestResolveUnknownIntentFallsBack(t *testing.T) {
	c := New(slog.Default())
	expected := c.Resolve(DefaultIntent)

	for _, intent := range []string{"", "bogus", "participant-onboarding", "PARTICIPANT_ONBOARDING"} {
		definition := c.Resolve(intent)
		require.NotNil(t, definition)
		assert.Same(t, expected, definition, "intent %q must resolve to the default definition", intent)
	}
}

func TestIntents(t *testing.T) {
	c := New(slog.Default())

	assert.ElementsMatch(t, []string{
		"participant_onboarding",
		"care_advisor_certification",
		"fms_vendor_setup",
		"quality_assurance_audit",
	}, c.Intents())
}
