package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 10},
		{"page=3&limit=25", 3, 25},
		{"page=0&limit=0", 1, 1},
		{"page=-5&limit=-5", 1, 1},
		{"page=abc&limit=xyz", 1, 10},
		{"limit=100", 1, 100},
		{"limit=101", 1, 100},
		// a huge but parseable page caps rather than overflowing skip
		{"page=9000000000000000000&limit=100", 1_000_000_000, 100},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/products?"+tt.query, nil)

			page, limit := parsePagination(c)

			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		param     string
		wantField string
		wantDesc  bool
	}{
		{"", "createdAt", true},
		{"price", "price", false},
		{"-price", "price", true},
		{"name", "name", false},
		{"-updatedAt", "updatedAt", true},
		{"secretField", "createdAt", true},
		{"-unknown", "createdAt", true},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			field, desc := parseSort(tt.param)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantDesc, desc)
		})
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, int64(0), pageCount(0, 10))
	assert.Equal(t, int64(1), pageCount(1, 10))
	assert.Equal(t, int64(1), pageCount(10, 10))
	assert.Equal(t, int64(2), pageCount(15, 10))
	assert.Equal(t, int64(2), pageCount(11, 10))
}
