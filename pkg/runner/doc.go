/*
Package runner implements the top-level batch entry point.

A Runner resolves the session a batch belongs to, makes it the active session of the
calling thread, submits every item to the pool (which captures that session), waits
for all of them and records each outcome into the session's RunStatus. Every task
gets its own domain.Result in the executing thread's result cell for the duration of
the task.

# Usage

	r := runner.NewRunner(registry, pool,
		runner.WithSessionID("batch-7"),
		runner.WithCatalog(catalog),
	)

	report, err := r.RunNamed(ctx, "extract", "convert")
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
