package propagate

import (
	"github.com/aretw0/carrier/pkg/cell"
	"github.com/aretw0/carrier/pkg/domain"
	"github.com/aretw0/carrier/pkg/execctx"
)

// Carrier captures one kind of context value from a submitting thread.
type Carrier interface {
	// Name labels the carrier in logs and metrics.
	Name() string
	// Capture reads the value held by src. A nil src captures nothing.
	Capture(src *execctx.Thread) Snapshot
}

// Snapshot is a captured value waiting to be installed on an executing thread.
type Snapshot interface {
	// Install saves dst's current value, installs the captured one if present,
	// and returns the function that puts dst back the way it was.
	Install(dst *execctx.Thread) (restore func(), installed bool)
}

// CellCarrier builds a Carrier for the cell that pick selects on a Thread.
func CellCarrier[T any](name string, pick func(*execctx.Thread) *cell.Cell[T]) Carrier {
	return cellCarrier[T]{name: name, pick: pick}
}

// SessionCarrier moves the active session.
func SessionCarrier() Carrier {
	return CellCarrier("session", (*execctx.Thread).SessionCell)
}

// ResultCarrier moves the current result.
func ResultCarrier() Carrier {
	return CellCarrier("result", (*execctx.Thread).ResultCell)
}

type cellCarrier[T any] struct {
	name string
	pick func(*execctx.Thread) *cell.Cell[T]
}

func (c cellCarrier[T]) Name() string {
	return c.name
}

func (c cellCarrier[T]) Capture(src *execctx.Thread) Snapshot {
	snap := cellSnapshot[T]{pick: c.pick}
	if src != nil {
		snap.value, snap.captured = c.pick(src).Get()
	}
	return snap
}

type cellSnapshot[T any] struct {
	pick     func(*execctx.Thread) *cell.Cell[T]
	value    T
	captured bool
}

func (s cellSnapshot[T]) Install(dst *execctx.Thread) (func(), bool) {
	target := s.pick(dst)
	previous, hadPrevious := target.Get()

	if s.captured {
		target.Set(s.value)
	}

	// Restore runs even when nothing was installed so values written by the work
	// itself never outlive it on a pooled thread.
	return func() {
		if hadPrevious {
			target.Set(previous)
			return
		}
		target.Clear()
	}, s.captured
}

var (
	_ Carrier = cellCarrier[*domain.Session]{}
	_ Carrier = cellCarrier[*domain.Result]{}
)
