/*
Package execctx models the per-execution-thread context slots that sessions and
results live in.

Go goroutines carry no identity and no thread-local storage, so an execution thread is
an explicit Thread value. Worker goroutines each own one Thread for their whole life;
callers bind theirs into a context.Context with WithThread and read it back with
ThreadFrom.

# Cells

  - Session cell: SetSession, Session, ClearSession, HasSession.
  - Result cell: SetResult, Result, ClearResult, HasResult.

The two cells are independent. Neither validates values or talks to the session
registry.
*/
package execctx
