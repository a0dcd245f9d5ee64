/*
Package worker implements the goroutine pool that executes submitted units of work.

Each worker goroutine owns one execctx.Thread for its whole life and reuses it for
every task it runs. Submit wraps work through a propagate.Propagator on the caller's
goroutine, so the caller's session travels with the task and the worker's thread is
restored once the task finishes.

Failures never kill a worker: errors and recovered panics are delivered to the task's
Handle and to the optional FailureHandler.
*/
package worker
