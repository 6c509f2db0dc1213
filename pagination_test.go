package logdash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindowForPartialLastPage(t *testing.T) {
	window := NewPageWindow(47, ItemsPerPage, 3)

	assert.Equal(t, 3, window.TotalPages)
	assert.Equal(t, 41, window.FirstIndex)
	assert.Equal(t, 47, window.LastIndex)
	assert.True(t, window.HasPrevious)
	assert.False(t, window.HasNext)
}

func TestPageWindowBoundsForEveryValidPage(t *testing.T) {
	for _, totalItems := range []int{1, 19, 20, 21, 40, 47, 100, 1001} {
		totalPages := (totalItems + ItemsPerPage - 1) / ItemsPerPage
		for page := 1; page <= totalPages; page++ {
			window := NewPageWindow(totalItems, ItemsPerPage, page)

			assert.Equal(t, totalPages, window.TotalPages)
			assert.Equal(t, (page-1)*ItemsPerPage+1, window.FirstIndex)
			assert.Equal(t, min(page*ItemsPerPage, totalItems), window.LastIndex)
			assert.LessOrEqual(t, window.FirstIndex, window.LastIndex)
		}
	}
}

func TestPageWindowWithoutItems(t *testing.T) {
	window := NewPageWindow(0, ItemsPerPage, 1)

	assert.Equal(t, 0, window.TotalPages)
	assert.Equal(t, 0, window.FirstIndex)
	assert.Equal(t, 0, window.LastIndex)
	assert.False(t, window.HasPrevious)
	assert.False(t, window.HasNext)

	for _, navigation := range []Navigation{NavigateFirst, NavigatePrevious, NavigateNext, NavigateLast} {
		_, ok := window.Target(navigation)
		assert.False(t, ok, navigation)
	}
}

func TestPageWindowTreatsNegativeCountAsEmpty(t *testing.T) {
	window := NewPageWindow(-5, ItemsPerPage, 1)

	assert.Equal(t, 0, window.TotalItems)
	assert.Equal(t, 0, window.TotalPages)
	assert.Equal(t, 0, window.FirstIndex)
}

func TestPageWindowUnpaged(t *testing.T) {
	window := NewPageWindow(47, 0, 1)

	assert.Equal(t, 1, window.TotalPages)
	assert.Equal(t, 1, window.FirstIndex)
	assert.Equal(t, 47, window.LastIndex)
}

func TestPageWindowTargetClampsNavigation(t *testing.T) {
	first := NewPageWindow(47, ItemsPerPage, 1)
	_, ok := first.Target(NavigatePrevious)
	assert.False(t, ok)
	_, ok = first.Target(NavigateFirst)
	assert.False(t, ok)
	target, ok := first.Target(NavigateNext)
	assert.True(t, ok)
	assert.Equal(t, 2, target)
	target, ok = first.Target(NavigateLast)
	assert.True(t, ok)
	assert.Equal(t, 3, target)

	last := NewPageWindow(47, ItemsPerPage, 3)
	_, ok = last.Target(NavigateNext)
	assert.False(t, ok)
	target, ok = last.Target(NavigatePrevious)
	assert.True(t, ok)
	assert.Equal(t, 2, target)
	target, ok = last.Target(NavigateFirst)
	assert.True(t, ok)
	assert.Equal(t, 1, target)
}

func TestParseNavigation(t *testing.T) {
	navigation, err := ParseNavigation("Next")
	assert.Nil(t, err)
	assert.Equal(t, NavigateNext, navigation)

	_, err = ParseNavigation("sideways")
	assert.ErrorIs(t, err, ErrUnknownNavigation)
}
