package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		count, size, want int
	}{
		{count: 0, size: 50, want: 1},
		{count: 1, size: 50, want: 1},
		{count: 50, size: 50, want: 1},
		{count: 51, size: 50, want: 2},
		{count: 120, size: 50, want: 3},
		{count: 10, size: 0, want: 1},
		{count: 10, size: math.MaxInt, want: 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.count, tc.size), "count=%d size=%d", tc.count, tc.size)
	}
}

func TestBounds(t *testing.T) {
	start, end := Bounds(3, 50, 120)
	assert.Equal(t, 100, start)
	assert.Equal(t, 120, end)

	start, end = Bounds(1, 25, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = Bounds(4, 50, 120)
	assert.Equal(t, start, end, "page past the end should be empty")

	start, end = Bounds(1, 50, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestBoundsLargeValuesDoNotOverflow(t *testing.T) {
	start, end := Bounds(math.MaxInt, 50, 1)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)

	start, end = Bounds(math.MaxInt/50+2, 50, 120)
	assert.Equal(t, 120, start)
	assert.Equal(t, 120, end)

	start, end = Bounds(1, math.MaxInt, 3)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	start, end = Bounds(3, 50, 101)
	assert.Equal(t, 100, start)
	assert.Equal(t, 101, end)
}

func TestPageSizeChoicesReturnsCopy(t *testing.T) {
	choices := PageSizeChoices()
	assert.Equal(t, []int{25, 50, 100, 200}, choices)
	choices[0] = 1
	assert.Equal(t, 25, PageSizeChoices()[0])
}
