package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrfuxi/gae-blog/pkg/slice"
)

/*
TestMap verifies element-wise transformation and nil passthrough.
*/
func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, slice.Map([]int{1, 2, 3}, strconv.Itoa))
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
}

/*
TestFilter verifies predicate selection.
*/
func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4, 5}, even))
	assert.Empty(t, slice.Filter([]int{1, 3}, even))
	assert.Nil(t, slice.Filter(nil, even))
}

/*
TestTake verifies bounded prefixes.
*/
func TestTake(t *testing.T) {
	input := []int{1, 2, 3, 4}

	assert.Equal(t, []int{1, 2, 3}, slice.Take(input, 3))
	assert.Equal(t, input, slice.Take(input, 10))
	assert.Empty(t, slice.Take(input, 0))
	assert.Empty(t, slice.Take(input, -1))
}
