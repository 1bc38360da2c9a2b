package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListResponsePageAndSize(t *testing.T) {
	resp := NewListResponse([]int{1, 2, 3}, 42, 20, 10)
	assert.Equal(t, 3, resp.Page)
	assert.Equal(t, 3, resp.Size)
	assert.EqualValues(t, 42, resp.Total)

	first := NewListResponse([]int{1}, 1, 0, 100)
	assert.Equal(t, 1, first.Page)

	mid := NewListResponse([]int{}, 5, 15, 10)
	assert.Equal(t, 2, mid.Page)
	assert.Equal(t, 0, mid.Size)
}

func TestNewListResponseNeverNilItems(t *testing.T) {
	resp := NewListResponse[string](nil, 0, 0, 10)
	assert.NotNil(t, resp.Items)
	assert.Equal(t, 0, resp.Size)
}
