package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagedResult_PageMath(t *testing.T) {
	items := make([]int, 10)

	page1 := NewPagedResult(items, 25, 1, 10)
	assert.Equal(t, 3, page1.TotalPages)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrevious)

	page3 := NewPagedResult(make([]int, 5), 25, 3, 10)
	assert.Equal(t, 3, page3.TotalPages)
	assert.False(t, page3.HasNext)
	assert.True(t, page3.HasPrevious)
}

func TestNewPagedResult_OutOfRangePage(t *testing.T) {
	page4 := NewPagedResult[int](nil, 25, 4, 10)
	assert.NotNil(t, page4.Items)
	assert.Empty(t, page4.Items)
	assert.Equal(t, int64(25), page4.TotalCount)
	assert.False(t, page4.HasNext)
	assert.True(t, page4.HasPrevious)
}

func TestNewPagedResult_Empty(t *testing.T) {
	page := NewPagedResult[int](nil, 0, 1, 10)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
}
