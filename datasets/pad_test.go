package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadInt64(t *testing.T) {
	out := padInt64([][]int64{{1, 2, 3}, {4}}, 0)
	assert.Equal(t, [][]int64{{1, 2, 3}, {4, 0, 0}}, out)

	out = padInt64([][]int64{{1}, {2, 3}}, -1)
	assert.Equal(t, [][]int64{{1, -1}, {2, 3}}, out)
}

func TestPadInt64EqualLengths(t *testing.T) {
	// Padding already-equal-length rows is the identity.
	in := [][]int64{{1, 2}, {3, 4}, {5, 6}}
	assert.Equal(t, in, padInt64(in, -1))
}

func TestPadInt64Grid(t *testing.T) {
	out := padInt64Grid([][][]int64{
		{{1, 1}, {1, 1}},
		{{2, 2, 2}, {2, 2, 2}, {2, 2, 2}},
	}, -1)

	assert.Equal(t, [][][]int64{
		{{1, 1, -1}, {1, 1, -1}, {-1, -1, -1}},
		{{2, 2, 2}, {2, 2, 2}, {2, 2, 2}},
	}, out)
}

func TestPadInt64GridEqualShapes(t *testing.T) {
	in := [][][]int64{
		{{1, 0}, {0, 1}},
		{{1, 1}, {1, 1}},
	}
	assert.Equal(t, in, padInt64Grid(in, -1))
}
