package agent

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nchci/hciflow/pkg/arms"
	"github.com/nchci/hciflow/pkg/forms"
	"github.com/nchci/hciflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToolSet(t *testing.T) *ToolSet {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(xml.Header + `<ARMSResponse><Status>OK</Status></ARMSResponse>`))
	}))
	t.Cleanup(server.Close)

	return DefaultToolSet(
		arms.NewClient(server.URL, "secret", slog.Default()),
		forms.NewEngine(slog.Default()),
		slog.Default(),
	)
}

func TestDefaultToolSetNames(t *testing.T) {
	set := testToolSet(t)

	assert.Equal(t, []string{"arms_query", "form_generator", "xml_builder", "validation_engine"}, set.Names())
}

func TestInvokeUnknownTool(t *testing.T) {
	set := testToolSet(t)

	_, err := set.Invoke(t.Context(), "payroll_export", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestInvokeARMSQuery(t *testing.T) {
	set := testToolSet(t)

	result, err := set.Invoke(t.Context(), "arms_query", map[string]any{
		"type":       "eligibility_check",
		"parameters": map[string]any{"ParticipantId": "P-1001", "ServiceCode": "T1019"},
	})
	require.NoError(t, err)

	response, ok := result.(*arms.Response)
	require.True(t, ok)
	assert.Equal(t, "OK", response.Status)
}

func TestInvokeFormGenerator(t *testing.T) {
	set := testToolSet(t)

	result, err := set.Invoke(t.Context(), "form_generator", map[string]any{"formType": "care_plan"})
	require.NoError(t, err)

	spec, ok := result.(*models.FormSpec)
	require.True(t, ok)
	assert.Equal(t, "care_plan", spec.Type)
}

func TestInvokeXMLBuilder(t *testing.T) {
	set := testToolSet(t)

	result, err := set.Invoke(t.Context(), "xml_builder", map[string]any{
		"type": "participant_enrollment",
		"data": map[string]any{"firstName": "Avery", "lastName": "Moore"},
	})
	require.NoError(t, err)

	document, ok := result.([]byte)
	require.True(t, ok)
	assert.Contains(t, string(document), `submissionType="ParticipantEnrollment"`)
}

func TestInvokeValidationEngine(t *testing.T) {
	set := testToolSet(t)

	result, err := set.Invoke(t.Context(), "validation_engine", map[string]any{
		"formType": "participant_enrollment",
		"data":     map[string]any{"firstName": "Avery"},
	})
	require.NoError(t, err)

	report, ok := result.(*models.ValidationResult)
	require.True(t, ok)
	assert.False(t, report.IsValid)
}
