package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		size       int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero size falls back to default", 1, 0, 0, DefaultPageSize},
		{"oversized page size falls back to default", 2, MaxPageSize + 1, 10, DefaultPageSize},
		{"page below one becomes first page", 0, 10, 0, 10},
		{"negative page becomes first page", -3, 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(25), info.TotalItems)

	// an empty result set still reports a single page
	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.CurrentPage)
	assert.Equal(t, 1, empty.TotalPages)

	// a page past the end clamps to the last page
	past := NewPaginationInfo(5, 9, 10)
	assert.Equal(t, 1, past.CurrentPage)
	assert.Equal(t, 1, past.TotalPages)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parse := func(query string) (int, int) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/plans?"+query, nil)
		return ParsePaginationParams(c)
	}

	page, size := parse("page=3&size=25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	page, size = parse("")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = parse("page=abc&size=-5")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)

	_, size = parse("size=1000")
	assert.Equal(t, DefaultPageSize, size)
}
