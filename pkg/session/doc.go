/*
Package session implements the session registry.

The Registry maps session identifiers to Session records, creates them idempotently,
and tracks a registry-wide current session used by entry points that are not given
an explicit identifier. It is an ordinary value constructed by the caller; there is
no package-level registry.
*/
package session
