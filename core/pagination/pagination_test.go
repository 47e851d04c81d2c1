package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thermowatch/thermowatch/core/pagination"
)

func items(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestWindow_TotalPages(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{length: 0, want: 1},
		{length: 1, want: 1},
		{length: 5, want: 1},
		{length: 6, want: 2},
		{length: 12, want: 3},
		{length: 15, want: 3},
		{length: 16, want: 4},
	}

	for _, tt := range tests {
		w := pagination.New(items(tt.length), 5)
		assert.Equal(t, tt.want, w.TotalPages(), "length %d", tt.length)
	}
}

func TestWindow_TwelveItemsPageSizeFive(t *testing.T) {
	w := pagination.New(items(12), 5)

	assert.Equal(t, 3, w.TotalPages())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, w.Page())

	w.Next()
	assert.Equal(t, []int{6, 7, 8, 9, 10}, w.Page())

	w.Next()
	assert.Equal(t, 3, w.Index())
	assert.Equal(t, []int{11, 12}, w.Page())
}

func TestWindow_PreviousClampsAtFirstPage(t *testing.T) {
	w := pagination.New(items(12), 5)

	w.Previous()

	assert.Equal(t, 1, w.Index())
	assert.False(t, w.HasPrevious())
}

func TestWindow_NextClampsAtLastPage(t *testing.T) {
	w := pagination.New(items(12), 5)
	w.Next()
	w.Next()

	w.Next() // already at the last page

	assert.Equal(t, 3, w.Index())
	assert.False(t, w.HasNext())
}

func TestWindow_SetItemsResetsIndex(t *testing.T) {
	w := pagination.New(items(12), 5)
	w.Next()
	w.Next()

	// A smaller replacement that would still contain page 2 must reset to 1
	// anyway: recency wins over position continuity.
	w.SetItems(items(10))

	assert.Equal(t, 1, w.Index())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, w.Page())
}

func TestWindow_SetItemsEmptyCollection(t *testing.T) {
	w := pagination.New(items(12), 5)
	w.Next()

	w.SetItems(nil)

	assert.Equal(t, 1, w.Index())
	assert.Equal(t, 1, w.TotalPages())
	assert.Empty(t, w.Page())
}

func TestWindow_ZeroValueUsable(t *testing.T) {
	var w pagination.Window[int]

	assert.Equal(t, 1, w.Index())
	assert.Equal(t, 1, w.TotalPages())
	assert.Equal(t, pagination.DefaultPageSize, w.Size())
	assert.Empty(t, w.Page())

	w.Next()
	w.Previous()
	assert.Equal(t, 1, w.Index())
}

func TestWindow_NonPositiveSizeFallsBack(t *testing.T) {
	w := pagination.New(items(7), 0)

	assert.Equal(t, pagination.DefaultPageSize, w.Size())
	assert.Equal(t, 2, w.TotalPages())
}
