package paging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pages(t *testing.T, calls *int, data map[string][]int, next map[string]string) Fetch[int] {
	t.Helper()
	return func(token string) ([]int, string, error) {
		*calls++
		items, ok := data[token]
		if !ok {
			return nil, "", errors.New("unknown token " + token)
		}
		return items, next[token], nil
	}
}

func TestDrain(t *testing.T) {
	calls := 0
	fetch := pages(t, &calls,
		map[string][]int{"": {1, 2}, "a": {}, "b": {3}},
		map[string]string{"": "a", "a": "b"},
	)

	items, err := Collect(Drain(fetch))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, items)
	assert.Equal(t, 3, calls)
}

func TestDrainIsRestartable(t *testing.T) {
	calls := 0
	seq := Drain(pages(t, &calls, map[string][]int{"": {1}}, nil))

	first, err := Collect(seq)
	require.NoError(t, err)
	second, err := Collect(seq)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, calls)
}

func TestDrainStopsOnError(t *testing.T) {
	calls := 0
	fetch := pages(t, &calls, map[string][]int{"": {1}}, map[string]string{"": "missing"})

	var errs int
	var items []int
	for item, err := range Drain(fetch) {
		if err != nil {
			errs++
			continue
		}
		items = append(items, item)
	}

	assert.Equal(t, []int{1}, items)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 2, calls)
}

func TestDrainStopsWhenConsumerBreaks(t *testing.T) {
	calls := 0
	fetch := pages(t, &calls, map[string][]int{"": {1, 2}, "a": {3}}, map[string]string{"": "a"})

	for range Drain(fetch) {
		break
	}
	assert.Equal(t, 1, calls)
}

func TestCollectReturnsPartialItems(t *testing.T) {
	calls := 0
	fetch := pages(t, &calls, map[string][]int{"": {1, 2}}, map[string]string{"": "gone"})

	items, err := Collect(Drain(fetch))
	assert.Error(t, err)
	assert.Equal(t, []int{1, 2}, items)
}
