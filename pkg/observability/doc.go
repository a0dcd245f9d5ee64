/*
Package observability provides Prometheus instrumentation for sessions, the worker
pool and context propagation.

Collectors live in a Metrics value registered against an explicit
prometheus.Registerer, so tests and embedders can use private registries. Every
method is safe to call on a nil *Metrics, which disables instrumentation.
*/
package observability
