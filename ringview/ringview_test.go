package ringview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tombola/ringview"
)

func get[T comparable](t *testing.T, r *ringview.RingView[T], i int) T {
	t.Helper()
	v, err := r.Get(i)
	require.NoError(t, err)
	return v
}

func TestRingView_Periodicity(t *testing.T) {
	r := ringview.From([]string{"a", "b", "c", "d"})

	for i := -8; i < 8; i++ {
		assert.Equal(t, get(t, r, i), get(t, r, i+4), "index %d", i)
	}
}

func TestRingView_NegativeIndexesWrap(t *testing.T) {
	r := ringview.From([]int{10, 20, 30})

	assert.Equal(t, 30, get(t, r, -1))
	assert.Equal(t, 20, get(t, r, -2))
	assert.Equal(t, 30, get(t, r, -4))

	// Set normalizes the same way Get does
	require.NoError(t, r.Set(-1, 99))
	assert.Equal(t, 99, get(t, r, 2))
}

func TestRingView_StartIndex(t *testing.T) {
	values := []string{"a", "b", "c", "d"}

	for k := range values {
		r := ringview.From(values)
		require.NoError(t, r.SetStartIndex(k))
		assert.Equal(t, values[k], get(t, r, 0))
	}
}

func TestRingView_StartIndexOutOfRange(t *testing.T) {
	r := ringview.From([]int{1, 2, 3})
	require.NoError(t, r.SetStartIndex(1))

	assert.ErrorIs(t, r.SetStartIndex(3), ringview.ErrOutOfRange)
	assert.ErrorIs(t, r.SetStartIndex(-1), ringview.ErrOutOfRange)

	// Failed sets leave the previous start in place
	assert.Equal(t, 1, r.StartIndex())
	assert.Equal(t, 2, get(t, r, 0))
}

func TestRingView_Reverse(t *testing.T) {
	values := []string{"a", "b", "c", "d", "e"}

	t.Run("MirrorsLogicalOrder", func(t *testing.T) {
		r := ringview.From(values)
		r.Reverse()

		for i := range values {
			assert.Equal(t, values[len(values)-1-i], get(t, r, i))
		}
	})

	t.Run("Involution", func(t *testing.T) {
		r := ringview.From(values)
		require.NoError(t, r.SetStartIndex(2))

		var before []string
		for i := range values {
			before = append(before, get(t, r, i))
		}

		r.Reverse()
		r.Reverse()

		for i := range values {
			assert.Equal(t, before[i], get(t, r, i))
		}
	})

	t.Run("WithOffsetStart", func(t *testing.T) {
		r := ringview.From(values)
		require.NoError(t, r.SetStartIndex(3))
		// forward from d: d e a b c
		r.Reverse()
		// reversed: c b a e d
		assert.Equal(t, "c", get(t, r, 0))
		assert.Equal(t, "b", get(t, r, 1))
		assert.Equal(t, "d", get(t, r, 4))
	})
}

func TestRingView_EndIndex(t *testing.T) {
	r := ringview.From([]int{1, 2, 3, 4})
	require.NoError(t, r.SetStartIndex(2))

	// forward from start 2: 3 4 1 2, so the end sits one position behind start
	end, err := r.EndIndex()
	require.NoError(t, err)
	assert.Equal(t, 1, end)

	r.Reverse()
	// reversed: 2 1 4 3, logical last is the 3 at storage position 2
	end, err = r.EndIndex()
	require.NoError(t, err)
	assert.Equal(t, 2, end)

	last, err := r.Last()
	require.NoError(t, err)
	assert.Equal(t, 3, last)

	_, err = ringview.New[int]().EndIndex()
	assert.ErrorIs(t, err, ringview.ErrEmpty)
}

func TestRingView_Add(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		reverse bool
	}{
		{name: "DefaultStart", start: 0},
		{name: "OffsetStart", start: 2},
		{name: "LastStart", start: 3},
		{name: "Reversed", start: 0, reverse: true},
		{name: "ReversedOffsetStart", start: 2, reverse: true},
		{name: "ReversedLastStart", start: 3, reverse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ringview.From([]string{"a", "b", "c", "d"})
			require.NoError(t, r.SetStartIndex(tt.start))
			if tt.reverse {
				r.Reverse()
			}

			var before []string
			for i := 0; i < r.Len(); i++ {
				before = append(before, get(t, r, i))
			}

			require.NoError(t, r.Add("x"))

			assert.Equal(t, 5, r.Len())
			last, err := r.Last()
			require.NoError(t, err)
			assert.Equal(t, "x", last)

			// existing logical order is untouched
			for i, want := range before {
				assert.Equal(t, want, get(t, r, i), "index %d", i)
			}
		})
	}
}

func TestRingView_AddToEmpty(t *testing.T) {
	r := ringview.New[int]()
	require.NoError(t, r.Add(7))

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 7, get(t, r, 0))
}

func TestRingView_Remove(t *testing.T) {
	r := ringview.From([]string{"a", "b", "c", "b"})

	ok, err := r.Remove("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, r.Len())

	// only the first storage occurrence goes
	assert.True(t, r.Contains("b"))

	ok, err = r.Remove("z")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRingView_RemoveAt(t *testing.T) {
	r := ringview.From([]string{"a", "b", "c"})
	require.NoError(t, r.RemoveAt(1))

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "a", get(t, r, 0))
	assert.Equal(t, "c", get(t, r, 1))

	r = ringview.New[string]()
	assert.ErrorIs(t, r.RemoveAt(0), ringview.ErrEmpty)
}

func TestRingView_RemoveClampsStart(t *testing.T) {
	r := ringview.From([]int{1, 2, 3})
	require.NoError(t, r.SetStartIndex(2))
	require.NoError(t, r.RemoveAt(1)) // deletes storage position 0

	// start pointed past the shrunken storage; reads must still work
	assert.Equal(t, 2, r.Len())
	_, err := r.Get(0)
	assert.NoError(t, err)
}

func TestRingView_IndexOf(t *testing.T) {
	r := ringview.From([]string{"a", "b", "c", "d"})
	require.NoError(t, r.SetStartIndex(2))

	// logical: c d a b
	assert.Equal(t, 0, r.IndexOf("c"))
	assert.Equal(t, 2, r.IndexOf("a"))
	assert.Equal(t, -1, r.IndexOf("z"))

	r.Reverse()
	// logical: b a d c
	assert.Equal(t, 0, r.IndexOf("b"))
	assert.Equal(t, 3, r.IndexOf("c"))
}

func TestRingView_ReadOnly(t *testing.T) {
	r := ringview.From([]int{1, 2, 3})
	r.SetReadOnly(true)

	assert.ErrorIs(t, r.Set(0, 9), ringview.ErrReadOnly)
	assert.ErrorIs(t, r.Add(9), ringview.ErrReadOnly)
	assert.ErrorIs(t, r.RemoveAt(0), ringview.ErrReadOnly)
	_, err := r.Remove(1)
	assert.ErrorIs(t, err, ringview.ErrReadOnly)

	// no mutation happened
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 1, get(t, r, 0))

	// reads are unaffected
	assert.Equal(t, 2, get(t, r, 1))

	r.SetReadOnly(false)
	assert.NoError(t, r.Set(0, 9))
}

func TestRingView_Empty(t *testing.T) {
	r := ringview.New[string]()

	_, err := r.Get(0)
	assert.ErrorIs(t, err, ringview.ErrEmpty)
	assert.ErrorIs(t, r.Set(0, "x"), ringview.ErrEmpty)
	_, err = r.EndIndex()
	assert.ErrorIs(t, err, ringview.ErrEmpty)
	_, err = r.First()
	assert.ErrorIs(t, err, ringview.ErrEmpty)
	_, err = r.Last()
	assert.ErrorIs(t, err, ringview.ErrEmpty)
	assert.Equal(t, -1, r.IndexOf("x"))
}

func TestRingView_FromCopies(t *testing.T) {
	src := []int{1, 2, 3}
	r := ringview.From(src)

	src[0] = 99
	assert.Equal(t, 1, get(t, r, 0))
}

func TestRingView_AdoptShares(t *testing.T) {
	src := []int{1, 2, 3}
	r := ringview.Adopt(src)

	src[0] = 99
	assert.Equal(t, 99, get(t, r, 0))

	require.NoError(t, r.Set(1, 42))
	assert.Equal(t, 42, src[1])
}

func TestRingView_WrapResetsState(t *testing.T) {
	r := ringview.From([]int{1, 2, 3})
	require.NoError(t, r.SetStartIndex(2))
	r.Reverse()
	r.SetReadOnly(true)

	r.Wrap([]int{7, 8})

	assert.Equal(t, 0, r.StartIndex())
	assert.False(t, r.Reversed())
	assert.False(t, r.ReadOnly())
	assert.Equal(t, 7, get(t, r, 0))
	assert.NoError(t, r.Add(9))
}
