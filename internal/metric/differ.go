package metric

import (
	"maps"

	"github.com/sorah/mackerel-plugin-bird/internal/state"
)

// Differ turns cumulative counters into per-interval deltas.
//
// Reads come from the snapshot given to NewDiffer, so updates made during a
// run never influence another diff in the same run.
type Differ struct {
	prev state.Counters
	next state.Counters
}

// NewDiffer creates a Differ over the previously persisted counters.
func NewDiffer(prev state.Counters) *Differ {
	next := maps.Clone(prev)
	if next == nil {
		next = state.Counters{}
	}

	return &Differ{
		prev: prev,
		next: next,
	}
}

// Diff records value for name and returns the increase since the previous
// observation. A first observation or a decrease (counter reset) yields 0.
func (d *Differ) Diff(name string, value, at int64) int64 {
	d.next[name] = state.Counter{Value: value, At: at}

	last, ok := d.prev[name]
	if !ok || last.Value > value {
		return 0
	}
	return value - last.Value
}

// Counters returns the updated counter set to persist.
func (d *Differ) Counters() state.Counters {
	return d.next
}
