package runner

import (
	"context"

	"github.com/aretw0/carrier/pkg/domain"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/propagate"
)

// Middleware decorates a unit of work before it is submitted.
type Middleware func(propagate.Work) propagate.Work

// Chain applies middlewares so that the first one is the outermost.
func Chain(w propagate.Work, mws ...Middleware) propagate.Work {
	for i := len(mws) - 1; i >= 0; i-- {
		w = mws[i](w)
	}
	return w
}

// WithResult makes res the current result of the executing thread while w runs,
// then clears it so pooled threads do not retain it.
func WithResult(res *domain.Result) Middleware {
	return func(w propagate.Work) propagate.Work {
		return func(ctx context.Context) error {
			if th, ok := execctx.ThreadFrom(ctx); ok {
				th.SetResult(res)
				defer th.ClearResult()
			}
			err := w(ctx)
			if err != nil {
				res.Fail(err)
			}
			return err
		}
	}
}
