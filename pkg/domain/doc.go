/*
Package domain contains the core data model shared by every other carrier package.

It is kept free of I/O and scheduling concerns: the types here are plain values and
small concurrency-safe aggregates that collaborators mutate in place.

# Key Entities

  - Session: a named, process-lifetime logical run carrying configuration plus
    mutable outcome state.
  - RunStatus: the per-session outcome aggregate (succeeded/failed counts, failures).
  - ConversionState: the per-session work-product aggregate.
  - Result: the per-task outcome a unit of work accumulates into.
*/
package domain
