package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nchci/hciflow/pkg/arms"
	"github.com/nchci/hciflow/pkg/forms"
)

// Tool is one named capability an agent may exercise while producing its
// result. The orchestrator never invokes tools; only agents and their tests
// do.
type Tool struct {
	Name        string
	Description string
	Run         func(ctx context.Context, input map[string]any) (any, error)
}

// ToolSet holds an agent's tools in registration order.
type ToolSet struct {
	order []string
	tools map[string]Tool
}

func NewToolSet(tools ...Tool) *ToolSet {
	set := &ToolSet{tools: make(map[string]Tool, len(tools))}

	for _, tool := range tools {
		set.order = append(set.order, tool.Name)
		set.tools[tool.Name] = tool
	}

	return set
}

func (s *ToolSet) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)

	return names
}

func (s *ToolSet) Invoke(ctx context.Context, name string, input map[string]any) (any, error) {
	tool, ok := s.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool %q not registered", name)
	}

	return tool.Run(ctx, input)
}

// DefaultToolSet wires the program's standard tools: ARMS queries, form
// generation, XML document building, and form validation.
func DefaultToolSet(armsClient *arms.Client, engine *forms.Engine, logger *slog.Logger) *ToolSet {
	return NewToolSet(
		Tool{
			Name:        "arms_query",
			Description: "Query NC ARMS database for participant, service, or eligibility data",
			Run: func(ctx context.Context, input map[string]any) (any, error) {
				queryType, _ := input["type"].(string)

				params := map[string]string{}
				if raw, ok := input["parameters"].(map[string]any); ok {
					for name, value := range raw {
						params[name] = fmt.Sprintf("%v", value)
					}
				}

				switch queryType {
				case "eligibility_check":
					return armsClient.EligibilityCheck(ctx, params["ParticipantId"], params["ServiceCode"])
				case "participant_lookup", "":
					return armsClient.ParticipantLookup(ctx, params)
				default:
					return nil, fmt.Errorf("unsupported ARMS query type %q", queryType)
				}
			},
		},
		Tool{
			Name:        "form_generator",
			Description: "Generate dynamic forms based on HCI policies and user context",
			Run: func(ctx context.Context, input map[string]any) (any, error) {
				formType, _ := input["formType"].(string)

				return forms.Generate(formType), nil
			},
		},
		Tool{
			Name:        "xml_builder",
			Description: "Build XML documents for ARMS submission",
			Run: func(ctx context.Context, input map[string]any) (any, error) {
				submissionType, _ := input["type"].(string)
				data, _ := input["data"].(map[string]any)

				switch submissionType {
				case "participant_enrollment":
					return arms.BuildParticipantEnrollment(data, arms.SubmissionMetadata{})
				case "care_plan":
					return arms.BuildCarePlan(data, arms.SubmissionMetadata{})
				default:
					return arms.BuildGenericSubmission(submissionType, data, arms.SubmissionMetadata{})
				}
			},
		},
		Tool{
			Name:        "validation_engine",
			Description: "Validate form data against HCI policies and ARMS requirements",
			Run: func(ctx context.Context, input map[string]any) (any, error) {
				formType, _ := input["formType"].(string)
				data, _ := input["data"].(map[string]any)

				return engine.Validate(formType, data), nil
			},
		},
	)
}
