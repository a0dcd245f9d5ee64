/*
Package propagate carries execution context from the goroutine that submits work to
the worker thread that eventually runs it.

Wrap captures the submitter's context values when the work is wrapped, installs them
on the executing Thread when the work starts, and restores whatever that Thread held
before once the work returns or panics. The capture/install/restore sequence is
written once in CellCarrier and parametrised by the cell it moves, so sessions and
results share the same algorithm.

	p := propagate.New()
	wrapped := p.Wrap(callerCtx, func(ctx context.Context) error {
		th, _ := execctx.ThreadFrom(ctx)
		s, _ := th.Session() // the caller's session
		...
	})
	pool.Enqueue(wrapped)
*/
package propagate
