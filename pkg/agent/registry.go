package agent

import (
	"fmt"
	"log/slog"

	"github.com/nchci/hciflow/pkg/llm"
	"github.com/nchci/hciflow/pkg/models"
)

// ErrAgentNotAvailable is returned when a required agent was never
// registered. That is a deployment defect, not a runtime data problem.
var ErrAgentNotAvailable = fmt.Errorf("required agent not available")

// Registry holds the long-lived agent instances, one per agent id.
type Registry struct {
	logger *slog.Logger
	order  []string
	agents map[string]*Agent
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		agents: make(map[string]*Agent),
	}
}

func (r *Registry) Register(a *Agent) {
	if _, exists := r.agents[a.ID()]; !exists {
		r.order = append(r.order, a.ID())
	}

	r.agents[a.ID()] = a
	r.logger.Info("Initialized agent", "agent", a.ID())
}

// Get returns the agent registered under id.
func (r *Registry) Get(id string) (*Agent, error) {
	a, ok := r.agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotAvailable, id)
	}

	return a, nil
}

// IDs lists registered agent ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)

	return ids
}

// InitializeDefault builds a registry with the four program specialists all
// sharing one model client and tool set.
func InitializeDefault(client llm.Client, tools *ToolSet, logger *slog.Logger) *Registry {
	registry := NewRegistry(logger)

	for _, config := range models.DefaultAgentConfigs() {
		registry.Register(New(config, client, tools, logger))
	}

	return registry
}
