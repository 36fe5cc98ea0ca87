package compose

import (
	"sync/atomic"
	"time"

	"github.com/kbdviz/kbdviz/layout"
)

// Holder publishes the current index to concurrent readers. Indexes are
// replaced whole; a published index is never modified.
type Holder struct {
	current   atomic.Pointer[Index]
	builds    atomic.Uint64
	failures  atomic.Uint64
	lastBuild atomic.Int64
}

// NewHolder returns a Holder serving the empty index.
func NewHolder() *Holder {
	h := &Holder{}
	h.current.Store(Empty())
	return h
}

// Load returns the published index.
func (h *Holder) Load() *Index {
	if idx := h.current.Load(); idx != nil {
		return idx
	}
	return Empty()
}

// Swap publishes idx and returns the index it replaced. A nil idx publishes
// the empty index.
func (h *Holder) Swap(idx *Index) *Index {
	if idx == nil {
		idx = Empty()
	}
	old := h.current.Swap(idx)
	if old == nil {
		old = Empty()
	}
	return old
}

// Rebuild builds an index from src and publishes it. On failure the
// previously published index stays in place and the error is returned.
func (h *Holder) Rebuild(src layout.Source) (Stats, error) {
	idx, stats, err := Build(src)
	if err != nil {
		h.failures.Add(1)
		return Stats{}, err
	}
	h.Swap(idx)
	h.builds.Add(1)
	h.lastBuild.Store(time.Now().UnixNano())
	return stats, nil
}

// Builds returns the number of successful rebuilds.
func (h *Holder) Builds() uint64 { return h.builds.Load() }

// Failures returns the number of failed rebuilds.
func (h *Holder) Failures() uint64 { return h.failures.Load() }

// LastBuild returns when the last successful rebuild finished, or the zero
// time when none has.
func (h *Holder) LastBuild() time.Time {
	ns := h.lastBuild.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
