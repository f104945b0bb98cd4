package arms

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildParticipantEnrollment(t *testing.T) {
	data := map[string]any{
		"firstName":         "Avery",
		"lastName":          "Moore",
		"ssn":               "123456789",
		"dob":               "1960-04-12",
		"primaryPhone":      "(919) 555-0142",
		"streetAddress":     "12 Maple St",
		"city":              "Durham",
		"zipCode":           "27701",
		"medicaidNumber":    "MCD-883920",
		"hasRepresentative": "Yes",
		"representativeName": "Jordan Moore",
	}

	document, err := BuildParticipantEnrollment(data, SubmissionMetadata{
		SubmissionID:   "SUB-TEST-1",
		SubmissionDate: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	text := string(document)
	assert.True(t, strings.HasPrefix(text, xml.Header))
	assert.Contains(t, text, `submissionType="ParticipantEnrollment"`)
	assert.Contains(t, text, "<SubmissionId>SUB-TEST-1</SubmissionId>")
	assert.Contains(t, text, "<SSN>123-45-6789</SSN>")
	assert.Contains(t, text, "<PrimaryPhone>919-555-0142</PrimaryPhone>")
	assert.Contains(t, text, "<State>NC</State>")
	assert.Contains(t, text, "<HasRepresentative>true</HasRepresentative>")
	assert.Contains(t, text, "<RepresentativeName>Jordan Moore</RepresentativeName>")

	var decoded Submission
	require.NoError(t, xml.Unmarshal(document, &decoded))
	require.NotNil(t, decoded.Participant)
	assert.Equal(t, "Avery", decoded.Participant.Personal.FirstName)
}

func TestBuildCarePlanDefaultsMetadata(t *testing.T) {
	document, err := BuildCarePlan(map[string]any{
		"participantId": "P-1001",
		"primaryGoal":   "Maintain independent living",
	}, SubmissionMetadata{})
	require.NoError(t, err)

	text := string(document)
	assert.Contains(t, text, `submissionType="CarePlan"`)
	assert.Contains(t, text, "<SubmissionId>SUB-")
	assert.Contains(t, text, "<PlanStatus>Active</PlanStatus>")
	assert.Contains(t, text, "<PrimaryGoal>Maintain independent living</PrimaryGoal>")
}

func TestBuildGenericSubmission(t *testing.T) {
	document, err := BuildGenericSubmission("AdvisorCredentials", map[string]any{
		"advisorName": "J. Rivera",
	}, SubmissionMetadata{})
	require.NoError(t, err)

	text := string(document)
	assert.Contains(t, text, `submissionType="AdvisorCredentials"`)
	assert.Contains(t, text, `<Field name="advisorName">J. Rivera</Field>`)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "123-45-6789", FormatSSN("123 45 6789"))
	assert.Equal(t, "12345", FormatSSN("12345"))
	assert.Equal(t, "919-555-0142", FormatPhone("(919) 555-0142"))
	assert.Equal(t, "555-0142", FormatPhone("555-0142"))
}

func TestClientEligibilityCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathEligibility, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/xml", r.Header.Get("Content-Type"))

		_, _ = w.Write([]byte(xml.Header + `<ARMSResponse><Status>Eligible</Status><Message>ok</Message></ARMSResponse>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", slog.Default())

	response, err := client.EligibilityCheck(t.Context(), "P-1001", "T1019")
	require.NoError(t, err)
	assert.Equal(t, "Eligible", response.Status)
}

func TestClientNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", slog.Default())

	_, err := client.ParticipantLookup(t.Context(), map[string]string{"LastName": "Moore"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ARMS API error: 403")
}
