// Package ringview presents a slice as a circular index space that can be
// rotated and reversed in O(1) without moving any elements.
package ringview

import "errors"

var (
	ErrEmpty      = errors.New("ring view is empty")
	ErrOutOfRange = errors.New("index out of range")
	ErrReadOnly   = errors.New("ring view is read-only")
)

// RingView owns (or borrows, see Adopt) an ordered sequence and maps a
// logical index space onto it. Logical index 0 lives at storage position
// start; when reversed, increasing logical indices walk storage backward.
type RingView[T comparable] struct {
	storage  []T
	start    int
	reversed bool
	readOnly bool
}

// New returns an empty view.
func New[T comparable]() *RingView[T] {
	return &RingView[T]{}
}

// From builds a view over a copy of src; later mutation of src does not
// affect the view.
func From[T comparable](src []T) *RingView[T] {
	return &RingView[T]{
		storage: append([]T(nil), src...),
	}
}

// Adopt builds a view directly over src without copying. The view and the
// caller share the backing array until the view grows past its capacity;
// the caller must not change the length of src while the view is live.
func Adopt[T comparable](src []T) *RingView[T] {
	return &RingView[T]{
		storage: src,
	}
}

// Wrap rebinds the view to src (no copy) and resets start, orientation and
// the read-only flag. Same aliasing caveats as Adopt.
func (r *RingView[T]) Wrap(src []T) {
	r.storage = src
	r.start = 0
	r.reversed = false
	r.readOnly = false
}

func (r *RingView[T]) Len() int {
	return len(r.storage)
}

func (r *RingView[T]) Reversed() bool {
	return r.reversed
}

func (r *RingView[T]) ReadOnly() bool {
	return r.readOnly
}

func (r *RingView[T]) SetReadOnly(ro bool) {
	r.readOnly = ro
}

func (r *RingView[T]) StartIndex() int {
	return r.start
}

// SetStartIndex re-bases logical index 0 onto storage position i. Unlike
// Get, it does not wrap: i must already be a valid storage position.
func (r *RingView[T]) SetStartIndex(i int) error {
	if i < 0 || i >= len(r.storage) {
		return ErrOutOfRange
	}
	r.start = i
	return nil
}

// EndIndex returns the storage position of the logical last element.
func (r *RingView[T]) EndIndex() (int, error) {
	if len(r.storage) == 0 {
		return 0, ErrEmpty
	}
	return r.pos(len(r.storage) - 1), nil
}

// pos maps a logical index to a storage position. Any integer is accepted;
// the index wraps modulo the length in both directions. Caller guarantees
// the view is non-empty.
func (r *RingView[T]) pos(i int) int {
	n := len(r.storage)
	i %= n
	if i < 0 {
		i += n
	}
	if r.reversed {
		return (r.start + n - i) % n
	}
	return (r.start + i) % n
}

func (r *RingView[T]) Get(i int) (T, error) {
	if len(r.storage) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return r.storage[r.pos(i)], nil
}

func (r *RingView[T]) Set(i int, v T) error {
	if r.readOnly {
		return ErrReadOnly
	}
	if len(r.storage) == 0 {
		return ErrEmpty
	}
	r.storage[r.pos(i)] = v
	return nil
}

func (r *RingView[T]) First() (T, error) {
	return r.Get(0)
}

func (r *RingView[T]) Last() (T, error) {
	return r.Get(len(r.storage) - 1)
}

// Reverse flips the traversal direction in O(1). Relocating start to the
// old logical last element first means the same values come back in the
// opposite order; nothing in storage moves.
func (r *RingView[T]) Reverse() {
	n := len(r.storage)
	if n > 0 {
		if r.reversed {
			r.start = (r.start + 1) % n
		} else {
			r.start = (r.start + n - 1) % n
		}
	}
	r.reversed = !r.reversed
}

// Add inserts v so that it becomes the logical last element under the
// current orientation.
func (r *RingView[T]) Add(v T) error {
	if r.readOnly {
		return ErrReadOnly
	}
	n := len(r.storage)
	if n == 0 {
		r.storage = append(r.storage, v)
		r.start = 0
		return nil
	}

	// Storage slot immediately after the logical end.
	var p int
	if r.reversed {
		p = r.start + 1
	} else {
		end, _ := r.EndIndex()
		p = end + 1
	}

	r.storage = append(r.storage, v)
	copy(r.storage[p+1:], r.storage[p:])
	r.storage[p] = v
	if p <= r.start {
		r.start++
	}
	return nil
}

// Remove deletes the first storage occurrence of v. Start is not re-based
// when an earlier position is removed, so logical index 0 may land on a
// shifted element; it is only clamped back into range.
func (r *RingView[T]) Remove(v T) (bool, error) {
	if r.readOnly {
		return false, ErrReadOnly
	}
	for p, x := range r.storage {
		if x == v {
			r.deleteAt(p)
			return true, nil
		}
	}
	return false, nil
}

// RemoveAt deletes the element at logical index i. Same start caveat as
// Remove.
func (r *RingView[T]) RemoveAt(i int) error {
	if r.readOnly {
		return ErrReadOnly
	}
	if len(r.storage) == 0 {
		return ErrEmpty
	}
	r.deleteAt(r.pos(i))
	return nil
}

func (r *RingView[T]) deleteAt(p int) {
	r.storage = append(r.storage[:p], r.storage[p+1:]...)
	if r.start >= len(r.storage) {
		r.start = 0
	}
}

func (r *RingView[T]) Contains(v T) bool {
	return r.IndexOf(v) >= 0
}

// IndexOf returns the logical index of the first storage occurrence of v,
// or -1 if absent.
func (r *RingView[T]) IndexOf(v T) int {
	n := len(r.storage)
	for p, x := range r.storage {
		if x == v {
			if r.reversed {
				return (r.start + n - p) % n
			}
			return (p + n - r.start) % n
		}
	}
	return -1
}
