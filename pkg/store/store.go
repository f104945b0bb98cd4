// Package store provides the persistence abstraction for sessions and their
// active workflows.
package store

import (
	"context"
	"errors"

	"github.com/nchci/hciflow/pkg/models"
)

// ErrNotFound is returned when a user has no record of the requested kind.
var ErrNotFound = errors.New("record not found")

// IsNotFound reports whether err means record absence rather than failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Store keeps per-user journey state. Implementations apply a TTL so
// abandoned journeys do not accumulate forever, and must scope mutation per
// user key.
type Store interface {
	PutSession(ctx context.Context, userID string, session *models.Session) error
	Session(ctx context.Context, userID string) (*models.Session, error)

	PutActiveWorkflow(ctx context.Context, userID string, workflow *models.ActiveWorkflow) error
	ActiveWorkflow(ctx context.Context, userID string) (*models.ActiveWorkflow, error)

	// DeleteJourney removes both records for the user.
	DeleteJourney(ctx context.Context, userID string) error

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
