// Package pickset implements drawing without replacement over a ring view.
// Every logical index can be grabbed at most once per generation; Reset
// starts a new generation in O(1) instead of clearing per-item flags.
package pickset

import (
	"math"

	"tombola/ringview"
)

// ErrOutOfRange aliases the ring view sentinel so callers can match either.
var ErrOutOfRange = ringview.ErrOutOfRange

// neverDrawn is below every valid generation, so fresh entries are always
// available.
const neverDrawn uint64 = 0

const firstGeneration uint64 = 1

// PickSet keeps two ring views in lockstep: the drawable items and a
// generation stamp per logical index. An index is available iff its stamp
// is below the current generation. The inner views share identical start
// and orientation state for their whole lifetime, which is why every
// reordering operation goes through PickSet and hits both.
type PickSet[T comparable] struct {
	items      *ringview.RingView[T]
	stamps     *ringview.RingView[uint64]
	generation uint64
}

// New returns an empty set.
func New[T comparable]() *PickSet[T] {
	return &PickSet[T]{
		items:      ringview.New[T](),
		stamps:     ringview.New[uint64](),
		generation: firstGeneration,
	}
}

// From builds a set over a copy of src with every index available.
func From[T comparable](src []T) *PickSet[T] {
	return &PickSet[T]{
		items:      ringview.From(src),
		stamps:     ringview.From(make([]uint64, len(src))),
		generation: firstGeneration,
	}
}

func (p *PickSet[T]) Len() int {
	return p.items.Len()
}

// Grab draws the item at logical index i. The second return reports
// availability: false means the index was already drawn this generation,
// and the zero value comes back instead of the item.
func (p *PickSet[T]) Grab(i int) (T, bool, error) {
	var zero T
	if i < 0 || i >= p.items.Len() {
		return zero, false, ErrOutOfRange
	}

	stamp, err := p.stamps.Get(i)
	if err != nil {
		return zero, false, err
	}
	if stamp >= p.generation {
		return zero, false, nil
	}

	v, err := p.items.Get(i)
	if err != nil {
		return zero, false, err
	}
	if err := p.stamps.Set(i, p.generation); err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Reset makes every index available again by bumping the generation; no
// stamp is touched. When the counter would overflow it instead rewrites
// all stamps to the never-drawn sentinel once, so the amortized cost is
// still O(1).
func (p *PickSet[T]) Reset() {
	if p.generation == math.MaxUint64 {
		for i := 0; i < p.stamps.Len(); i++ {
			p.stamps.Set(i, neverDrawn)
		}
		p.generation = firstGeneration
		return
	}
	p.generation++
}

// Add appends v as the logical last element, immediately available.
func (p *PickSet[T]) Add(v T) {
	p.items.Add(v)
	p.stamps.Add(neverDrawn)
}

// Remove deletes the first occurrence of v and its stamp, reporting
// whether anything was removed.
func (p *PickSet[T]) Remove(v T) bool {
	i := p.items.IndexOf(v)
	if i < 0 {
		return false
	}
	p.items.RemoveAt(i)
	p.stamps.RemoveAt(i)
	return true
}

// RemoveAt deletes the item and stamp at logical index i.
func (p *PickSet[T]) RemoveAt(i int) error {
	if i < 0 || i >= p.items.Len() {
		return ErrOutOfRange
	}
	p.items.RemoveAt(i)
	p.stamps.RemoveAt(i)
	return nil
}

func (p *PickSet[T]) Contains(v T) bool {
	return p.items.Contains(v)
}

// Available reports whether logical index i can still be grabbed this
// generation.
func (p *PickSet[T]) Available(i int) bool {
	stamp, err := p.stamps.Get(i)
	if err != nil {
		return false
	}
	return stamp < p.generation
}

// Remaining counts the indices still available this generation.
func (p *PickSet[T]) Remaining() int {
	n := 0
	for i := 0; i < p.stamps.Len(); i++ {
		stamp, _ := p.stamps.Get(i)
		if stamp < p.generation {
			n++
		}
	}
	return n
}

// Reverse flips the logical order of both views in tandem, keeping items
// and stamps index-aligned. Drawn entries stay drawn under their new
// logical indices.
func (p *PickSet[T]) Reverse() {
	p.items.Reverse()
	p.stamps.Reverse()
}

func (p *PickSet[T]) StartIndex() int {
	return p.items.StartIndex()
}

// SetStartIndex re-bases both views in tandem.
func (p *PickSet[T]) SetStartIndex(i int) error {
	if err := p.items.SetStartIndex(i); err != nil {
		return err
	}
	return p.stamps.SetStartIndex(i)
}

// Items returns the values in logical order.
func (p *PickSet[T]) Items() []T {
	out := make([]T, 0, p.items.Len())
	for i := 0; i < p.items.Len(); i++ {
		v, _ := p.items.Get(i)
		out = append(out, v)
	}
	return out
}
