package testutils

import (
	"context"
	"testing"

	"github.com/aretw0/carrier/pkg/domain"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/session"
	"github.com/stretchr/testify/require"
)

// BindSession creates (or reuses) the session id in reg and returns a context whose
// thread has it installed. It fails the test immediately if the session cannot be found.
func BindSession(t *testing.T, reg *session.Registry, id string) (context.Context, *execctx.Thread, *domain.Session) {
	t.Helper()

	reg.Create(id, nil)
	s, err := reg.Get(id)
	require.NoError(t, err, "Failed to get session %q", id)

	th := execctx.NewThread(execctx.WithID("test-" + id))
	th.SetSession(s)
	return execctx.WithThread(context.Background(), th), th, s
}
