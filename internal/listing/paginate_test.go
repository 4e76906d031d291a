package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nums(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate_FirstPage(t *testing.T) {
	p := Paginate(nums(25), 1, 10)

	assert.Len(t, p.Items, 10)
	assert.Equal(t, 25, p.TotalItems)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 0, p.StartIndex)
	assert.Equal(t, 1, p.Items[0])
}

func TestPaginate_LastPartialPage(t *testing.T) {
	p := Paginate(nums(25), 3, 10)

	assert.Len(t, p.Items, 5)
	assert.Equal(t, 21, p.Items[0])
	assert.Equal(t, 20, p.StartIndex)
}

func TestPaginate_PageBeyondEndReturnsEmpty(t *testing.T) {
	p := Paginate(nums(25), 4, 10)

	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalPages)
}

func TestPaginate_EmptyCollectionHasOnePage(t *testing.T) {
	p := Paginate([]int{}, 1, 10)

	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalItems)
	assert.Equal(t, 1, p.TotalPages)
}

func TestPaginate_ClampsPageBelowOne(t *testing.T) {
	p := Paginate(nums(25), 0, 10)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.Items[0])
}

func TestPaginate_UnknownPageSizeFallsBackToDefault(t *testing.T) {
	p := Paginate(nums(25), 1, 7)

	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Len(t, p.Items, 10)
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, 5, ClampPageSize(5))
	assert.Equal(t, 50, ClampPageSize(50))
	assert.Equal(t, DefaultPageSize, ClampPageSize(0))
	assert.Equal(t, DefaultPageSize, ClampPageSize(100))
}

func TestPageWindow_AllPagesWhenFiveOrFewer(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, PageWindow(2, 3))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(5, 5))
}

func TestPageWindow_PinsToStart(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(1, 10))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(3, 10))
}

func TestPageWindow_PinsToEnd(t *testing.T) {
	assert.Equal(t, []int{6, 7, 8, 9, 10}, PageWindow(10, 10))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, PageWindow(8, 10))
}

func TestPageWindow_CentersOnCurrentPage(t *testing.T) {
	assert.Equal(t, []int{4, 5, 6, 7, 8}, PageWindow(6, 10))
}

func TestPageWindow_ClampsOutOfRangeCurrent(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(0, 10))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, PageWindow(99, 10))
	assert.Equal(t, []int{1}, PageWindow(1, 0))
}
