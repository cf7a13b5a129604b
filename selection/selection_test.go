package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-digest/timerange"
)

var full = timerange.Range{
	Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
}

func ms(h int) float64 {
	return float64(time.Date(2024, 5, 1, h, 0, 0, 0, time.UTC).UnixMilli())
}

func drag(t *testing.T, from, to Label) (timerange.Range, bool) {
	t.Helper()
	var got timerange.Range
	var calls int
	s := New(full, nil, func(r timerange.Range) {
		got = r
		calls++
	})
	s.Handle(PointerDown{At: from})
	s.Handle(PointerMove{At: to})
	committed := s.Handle(PointerUp{})
	assert.False(t, s.State().Active(), "gesture state must be cleared on release")
	if committed {
		require.Equal(t, 1, calls)
	} else {
		require.Equal(t, 0, calls)
	}
	return got, committed
}

func TestDragCommitsOrderedRange(t *testing.T) {
	forward, ok := drag(t, At(ms(10)), At(ms(14)))
	require.True(t, ok)
	backward, ok := drag(t, At(ms(14)), At(ms(10)))
	require.True(t, ok)

	assert.True(t, forward.Equal(backward))
	assert.False(t, forward.Start.After(forward.End))
	assert.Equal(t, "10:00  2024-05-01", timerange.Format(forward.Start))
	assert.Equal(t, "14:00  2024-05-01", timerange.Format(forward.End))
}

func TestZeroWidthAndMissingEndsDoNotCommit(t *testing.T) {
	cases := map[string][2]Label{
		"same position":  {At(ms(10)), At(ms(10))},
		"no anchor":      {Outside, At(ms(10))},
		"cursor outside": {At(ms(10)), Outside},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := drag(t, c[0], c[1])
			assert.False(t, ok)
		})
	}
}

func TestMoveWithoutAnchorIsIgnored(t *testing.T) {
	next, _, committed := Reduce(State{}, PointerMove{At: At(3)}, nil, full)
	assert.False(t, committed)
	assert.Equal(t, State{}, next)
}

func TestDoubleClickResetsToFull(t *testing.T) {
	var got timerange.Range
	s := New(full, nil, func(r timerange.Range) { got = r })

	s.Handle(PointerDown{At: At(ms(3))})
	assert.True(t, s.Handle(DoubleClick{}))
	assert.Equal(t, full, got)
	assert.False(t, s.State().Active())

	got = timerange.Range{}
	assert.True(t, s.Handle(DoubleClick{}))
	assert.Equal(t, full, got)
}

func TestMapperConvertsIndexPositions(t *testing.T) {
	times := []int64{
		int64(ms(1)), int64(ms(2)), int64(ms(5)), int64(ms(9)),
	}
	indexToMillis := func(pos float64) int64 { return times[int(pos)] }

	next, _, _ := Reduce(State{}, PointerDown{At: At(3)}, indexToMillis, full)
	next, _, _ = Reduce(next, PointerMove{At: At(1)}, indexToMillis, full)
	next, r, committed := Reduce(next, PointerUp{}, indexToMillis, full)

	require.True(t, committed)
	assert.Equal(t, State{}, next)
	assert.Equal(t, "02:00  2024-05-01", timerange.Format(r.Start))
	assert.Equal(t, "09:00  2024-05-01", timerange.Format(r.End))
}

func TestZeroPositionIsAValidLabel(t *testing.T) {
	next, _, _ := Reduce(State{}, PointerDown{At: At(0)}, nil, full)
	next, _, _ = Reduce(next, PointerMove{At: At(1000)}, nil, full)
	_, r, committed := Reduce(next, PointerUp{}, nil, full)
	require.True(t, committed)
	assert.Equal(t, int64(0), r.Start.UnixMilli())
	assert.Equal(t, int64(1000), r.End.UnixMilli())
}
