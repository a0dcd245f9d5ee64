package execctx

import "context"

type threadKey struct{}

// WithThread binds t to ctx as the calling execution thread.
func WithThread(ctx context.Context, t *Thread) context.Context {
	return context.WithValue(ctx, threadKey{}, t)
}

// ThreadFrom returns the execution thread bound to ctx.
func ThreadFrom(ctx context.Context) (*Thread, bool) {
	if ctx == nil {
		return nil, false
	}
	t, ok := ctx.Value(threadKey{}).(*Thread)
	return t, ok && t != nil
}

// Ensure returns ctx unchanged when it already carries a Thread; otherwise it binds
// a fresh one.
func Ensure(ctx context.Context, opts ...ThreadOption) (context.Context, *Thread) {
	if t, ok := ThreadFrom(ctx); ok {
		return ctx, t
	}
	t := NewThread(opts...)
	return WithThread(ctx, t), t
}
