package ports

import (
	"context"

	"github.com/aretw0/carrier/pkg/domain"
)

// SessionRegistry stores sessions by identifier.
type SessionRegistry interface {
	// Create returns the session for id, constructing it on first use.
	// created is false when an existing session was returned.
	Create(id string, config any) (s *domain.Session, created bool)

	// Get returns the session for id.
	// Returns domain.ErrSessionNotFound for unknown non-default ids.
	Get(id string) (*domain.Session, error)

	// SetCurrent marks the session for id as current.
	SetCurrent(id string) error

	// Current returns the current session, defaulting to the default session.
	Current() *domain.Session

	// List returns the registered identifiers.
	List() []string

	// Resolve picks the session for an entry point given an optional explicit id.
	Resolve(ctx context.Context, id string) (*domain.Session, error)
}
