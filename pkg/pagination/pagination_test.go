package pagination_test

import (
	"testing"

	"microblog/pkg/pagination"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestPaginate_FirstAndLastPage(t *testing.T) {
	// 30 items at page size 25: a full first page and a short second page.
	items := seq(30)

	page, err := pagination.Paginate(items, 1, 25)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 25)
	assert.Equal(t, 1, page.Items[0])
	assert.Equal(t, 25, page.Items[24])
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 30, page.TotalItems)

	page, err = pagination.Paginate(items, 2, 25)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 26, page.Items[0])
	assert.Equal(t, 30, page.Items[4])
	assert.Equal(t, 2, page.TotalPages)
}

func TestPaginate_BeyondLastPage(t *testing.T) {
	items := seq(30)

	page, err := pagination.Paginate(items, 3, 25)
	assert.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 30, page.TotalItems)

	// Far beyond the end behaves the same as one past the end.
	page, err = pagination.Paginate(items, 100, 25)
	assert.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.TotalPages)
}

func TestPaginate_InvalidPage(t *testing.T) {
	items := seq(10)

	_, err := pagination.Paginate(items, 0, 25)
	assert.ErrorIs(t, err, pagination.ErrInvalidPage)

	_, err = pagination.Paginate(items, -1, 25)
	assert.ErrorIs(t, err, pagination.ErrInvalidPage)
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	_, err := pagination.Paginate(seq(10), 1, 0)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, pagination.ErrInvalidPage)
}

func TestPaginate_EmptySequence(t *testing.T) {
	page, err := pagination.Paginate([]int{}, 1, 25)
	assert.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 0, page.TotalItems)
}

func TestPaginate_Deterministic(t *testing.T) {
	items := seq(12)

	first, err := pagination.Paginate(items, 2, 5)
	assert.NoError(t, err)
	second, err := pagination.Paginate(items, 2, 5)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	items := seq(5)
	page, err := pagination.Paginate(items, 1, 5)
	assert.NoError(t, err)

	page.Items[0] = 99
	assert.Equal(t, 1, items[0])
}
