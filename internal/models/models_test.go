package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudyProgressPercent(t *testing.T) {
	assert.Equal(t, 2, StudyProgress{TotalWordsStudied: 3, TotalAvailableWords: 124}.Percent())
	assert.Equal(t, 100, StudyProgress{TotalWordsStudied: 5, TotalAvailableWords: 5}.Percent())
	assert.Equal(t, 0, StudyProgress{TotalWordsStudied: 5}.Percent())
}

func TestQuickStatsMastery(t *testing.T) {
	assert.Equal(t, 40, QuickStats{SuccessRate: 80}.Mastery())
	assert.Equal(t, 0, QuickStats{}.Mastery())
}

func TestPaginationValid(t *testing.T) {
	assert.True(t, Pagination{CurrentPage: 1, TotalPages: 1}.Valid())
	assert.True(t, Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 0}.Valid())
	assert.False(t, Pagination{CurrentPage: 3, TotalPages: 2}.Valid())
	assert.False(t, Pagination{CurrentPage: 0, TotalPages: 2}.Valid())
}

func TestPaginate(t *testing.T) {
	all := []int{1, 2, 3, 4, 5, 6, 7}

	p := Paginate(all, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, p.Items)
	assert.Equal(t, Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 7, ItemsPerPage: 3}, p.Pagination)
	assert.True(t, p.Pagination.HasPrev())
	assert.True(t, p.Pagination.HasNext())

	last := Paginate(all, 3, 3)
	assert.Equal(t, []int{7}, last.Items)
	assert.False(t, last.Pagination.HasNext())

	beyond := Paginate(all, 9, 3)
	assert.Equal(t, []int{7}, beyond.Items)
	assert.Equal(t, 3, beyond.Pagination.CurrentPage)
	assert.True(t, beyond.Pagination.Valid())

	empty := Paginate([]int{}, 0, 0)
	assert.Equal(t, 1, empty.Pagination.TotalPages)
	assert.Equal(t, 1, empty.Pagination.CurrentPage)
	assert.Equal(t, 0, empty.Pagination.TotalItems)
}

func TestFilterKeepsPagination(t *testing.T) {
	p := Paginate([]int{1, 2, 3, 4}, 1, 4)
	odd := Filter(p, func(n int) bool { return n%2 == 1 })
	assert.Equal(t, []int{1, 3}, odd.Items)
	assert.Equal(t, p.Pagination, odd.Pagination)
}

func TestSingle(t *testing.T) {
	p := Single([]string{"a", "b"})
	assert.Equal(t, 2, p.Pagination.TotalItems)
	assert.Equal(t, 1, p.Pagination.TotalPages)
}
