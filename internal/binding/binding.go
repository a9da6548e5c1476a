// Package binding connects the region and season dropdowns to the table.
//
// A Binding owns the rows shown in one table. Whenever either dropdown value
// changes it recomputes the rows with the filter package and publishes
// them; nothing else writes the table. Calls are serialized, so a change is
// fully applied before the next one is admitted.
package binding

import (
	"sync"

	"github.com/pkordes/flavortown/internal/domain"
	"github.com/pkordes/flavortown/internal/filter"
)

// State is the recompute state of a Binding.
type State int

const (
	// Idle means no recompute is pending.
	Idle State = iota
	// Recomputing means the filter is running for the latest selection.
	Recomputing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recomputing:
		return "recomputing"
	}
	return "unknown"
}

// Sink receives every row set the binding publishes. The table widget is
// the usual sink.
type Sink interface {
	Publish(sel domain.Selection, rows []domain.FeatureRow)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(sel domain.Selection, rows []domain.FeatureRow)

// Publish calls f.
func (f SinkFunc) Publish(sel domain.Selection, rows []domain.FeatureRow) { f(sel, rows) }

// Snapshot is a consistent view of a Binding at one revision.
type Snapshot struct {
	Selection domain.Selection
	Rows      []domain.FeatureRow
	State     State
	// Revision increments on every publish. The initial rows are revision 1.
	Revision uint64
}

// Binding is the single writer of one table's rows.
type Binding struct {
	universe []domain.FeatureRow
	sink     Sink

	mu       sync.Mutex
	state    State
	sel      domain.Selection
	rows     []domain.FeatureRow
	revision uint64
}

// Option configures a Binding.
type Option func(*Binding)

// WithSink registers s to receive every published row set, including the
// initial one.
func WithSink(s Sink) Option {
	return func(b *Binding) { b.sink = s }
}

// New creates a Binding over universe, which must not be modified
// afterwards, and publishes the rows for initial.
func New(universe []domain.FeatureRow, initial domain.Selection, opts ...Option) *Binding {
	b := &Binding{universe: universe}
	for _, opt := range opts {
		opt(b)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.recompute(initial.Clone())
	return b
}

// SetRegions applies a new region dropdown value.
func (b *Binding) SetRegions(regions []string) Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.sel.Clone()
	next.Regions = append([]string(nil), regions...)
	return b.apply(next)
}

// SetSeasons applies a new season dropdown value.
func (b *Binding) SetSeasons(seasons []int) Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.sel.Clone()
	next.Seasons = append([]int(nil), seasons...)
	return b.apply(next)
}

// SetSelection applies both dropdown values at once. It recomputes at most
// once.
func (b *Binding) SetSelection(sel domain.Selection) Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.apply(sel.Clone())
}

// Snapshot returns the current selection and rows.
func (b *Binding) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.snapshot()
}

// apply must be called with mu held.
func (b *Binding) apply(next domain.Selection) Snapshot {
	if next.Equal(b.sel) {
		return b.snapshot()
	}
	b.recompute(next)
	return b.snapshot()
}

// recompute runs Idle → Recomputing → Idle. Must be called with mu held.
func (b *Binding) recompute(sel domain.Selection) {
	b.state = Recomputing
	rows := filter.ApplySelection(b.universe, sel)

	b.sel = sel
	b.rows = rows
	b.revision++
	if b.sink != nil {
		b.sink.Publish(sel.Clone(), rows)
	}
	b.state = Idle
}

func (b *Binding) snapshot() Snapshot {
	return Snapshot{
		Selection: b.sel.Clone(),
		Rows:      b.rows,
		State:     b.state,
		Revision:  b.revision,
	}
}
