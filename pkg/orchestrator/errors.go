package orchestrator

import "errors"

// ErrNoActiveWorkflow means the user never started a journey, or their state
// expired. The caller must start a journey first.
var ErrNoActiveWorkflow = errors.New("no active workflow for user")

// ErrWorkflowCompleted means the user's workflow already finished. A new
// journey must be started to execute further steps.
var ErrWorkflowCompleted = errors.New("workflow already completed")
