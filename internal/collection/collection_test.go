package collection_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icecream-parlor/internal/collection"
)

func TestMap(t *testing.T) {
	got := collection.Map([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, got)

	assert.Empty(t, collection.Map([]int(nil), strconv.Itoa))
}

func TestTryMap(t *testing.T) {
	errBoom := errors.New("boom")
	calls := 0
	conv := func(s string) (int, error) {
		calls++
		if s == "x" {
			return 0, errBoom
		}
		return strconv.Atoi(s)
	}

	got, err := collection.TryMap([]string{"1", "2"}, conv)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	// Останавливается на первой ошибке и не вызывает fn дальше
	calls = 0
	got, err = collection.TryMap([]string{"1", "x", "3"}, conv)
	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, got)
	assert.Equal(t, 2, calls)
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }
	assert.Equal(t, []int{2, 4}, collection.Filter([]int{1, 2, 3, 4}, even))
}

func TestRemoveIf(t *testing.T) {
	input := []string{"a", "", "b", "", "c"}
	got := collection.RemoveIf(input, func(s string) bool { return s == "" })

	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Empty(t, collection.RemoveIf([]string{"", ""}, func(s string) bool { return s == "" }))
}

func TestForEach(t *testing.T) {
	var sum int
	collection.ForEach([]int{1, 2, 3}, func(n int) { sum += n })
	assert.Equal(t, 6, sum)
}
