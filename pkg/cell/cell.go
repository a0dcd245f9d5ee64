/*
Package cell provides the storage primitive behind every per-execution context slot.

A Cell holds at most one value. It is deliberately unsynchronised: a Cell belongs to
exactly one execution thread (see package execctx), and that thread is driven by a
single goroutine at a time.
*/
package cell

// Cell is a slot holding at most one value of type T.
type Cell[T any] struct {
	value T
	set   bool
}

// Set stores v, replacing any previous value.
func (c *Cell[T]) Set(v T) {
	c.value = v
	c.set = true
}

// Get returns the stored value and whether one is present.
func (c *Cell[T]) Get() (T, bool) {
	return c.value, c.set
}

// Clear empties the cell and drops the reference it held.
func (c *Cell[T]) Clear() {
	var zero T
	c.value = zero
	c.set = false
}

// Has reports whether a value is present.
func (c *Cell[T]) Has() bool {
	return c.set
}
