/*
Package carrier propagates session context from the goroutines that submit work to the
pooled workers that run it.

A long-lived unit of work (a Session) is looked up by name in a Registry, made active
on the calling execution thread, and carried into every task submitted from that
thread. When a task finishes, normally, with an error or by panicking, the worker's
own context is put back exactly as it was, so a reused worker never serves one
session with another session's context.

# Concept

Goroutines have no identity and no thread-local storage. carrier therefore makes the
execution thread explicit: an execctx.Thread holds the per-thread cells (active
session, current result) and travels in a context.Context. Each pool worker owns one
Thread for its whole life.

# Usage

	rt := carrier.New(carrier.WithWorkers(8))
	defer rt.Close()

	rt.Registry().Create("batch-7", cfg)

	ctx, err := rt.Bind(context.Background(), "batch-7")
	if err != nil {
		log.Fatal(err)
	}

	h, err := rt.Submit(ctx, func(ctx context.Context) error {
		th, _ := execctx.ThreadFrom(ctx)
		s, _ := th.Session() // batch-7, on a worker goroutine
		s.ConversionState.Put("rows", 42)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := h.Wait(ctx); err != nil {
		log.Printf("task failed: %v", err)
	}
*/
package carrier
