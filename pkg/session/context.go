package session

import (
	"context"

	"github.com/aretw0/carrier/pkg/domain"
)

type currentKey struct{}

// NewContext scopes s as the current session for everything derived from ctx.
func NewContext(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, currentKey{}, s)
}

// FromContext returns the session scoped with NewContext.
func FromContext(ctx context.Context) (*domain.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(currentKey{}).(*domain.Session)
	return s, ok && s != nil
}
