// internal/utils/pagination_test.go
package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	c := testContext(t, "/v1/products")

	params := GetPaginationParams(c)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParams_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		page     int
		pageSize int
	}{
		{"explicit values", "/v1/products?page=3&page_size=25", 3, 25},
		{"page size capped", "/v1/products?page_size=500", 1, MaxPageSize},
		{"zero page clamped", "/v1/products?page=0", 1, DefaultPageSize},
		{"negative page size clamped", "/v1/products?page_size=-5", 1, DefaultPageSize},
		{"garbage ignored", "/v1/products?page=abc&page_size=xyz", 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := GetPaginationParams(testContext(t, tt.target))
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.pageSize, params.PageSize)
		})
	}
}

func TestCreatePage_Links(t *testing.T) {
	c := testContext(t, "/v1/products?page=2&page_size=10")
	c.Request.Host = "api.example.com"

	page := CreatePage(c, []string{}, 35, PaginationParams{Page: 2, PageSize: 10})

	assert.Equal(t, int64(35), page.Count)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://api.example.com/v1/products?page=3&page_size=10", *page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://api.example.com/v1/products?page=1&page_size=10", *page.Previous)
}

func TestCreatePage_FirstAndLastPage(t *testing.T) {
	c := testContext(t, "/v1/products")
	c.Request.Host = "api.example.com"

	first := CreatePage(c, []string{}, 35, PaginationParams{Page: 1, PageSize: 10})
	assert.Nil(t, first.Previous)
	assert.NotNil(t, first.Next)

	last := CreatePage(c, []string{}, 35, PaginationParams{Page: 4, PageSize: 10})
	assert.NotNil(t, last.Previous)
	assert.Nil(t, last.Next)
}

func TestCreatePage_SinglePage(t *testing.T) {
	c := testContext(t, "/v1/products")

	page := CreatePage(c, []string{}, 5, PaginationParams{Page: 1, PageSize: 10})
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
}

func TestCreatePage_EmptyResultSet(t *testing.T) {
	c := testContext(t, "/v1/products")

	page := CreatePage(c, []string{}, 0, PaginationParams{Page: 1, PageSize: 10})
	assert.Equal(t, int64(0), page.Count)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
}
