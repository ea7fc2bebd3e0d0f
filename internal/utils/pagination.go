// internal/utils/pagination.go
package utils

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PaginationParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Sort     string `json:"sort"`
	Order    string `json:"order"`
	Search   string `json:"search"`
}

// Page is the paginated response body: total count plus absolute links to the
// neighbouring pages, or null when there is no neighbour.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	sort := c.DefaultQuery("sort", "created_at")
	order := c.DefaultQuery("order", "desc")
	search := c.Query("search")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Sort:     sort,
		Order:    order,
		Search:   search,
	}
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset := (params.Page - 1) * params.PageSize
	return db.Offset(offset).Limit(params.PageSize)
}

func ApplySort(db *gorm.DB, params PaginationParams, allowedSortFields []string) *gorm.DB {
	sortField := params.Sort
	validSort := false
	for _, field := range allowedSortFields {
		if field == sortField {
			validSort = true
			break
		}
	}

	if !validSort {
		sortField = "created_at"
	}

	return db.Order(sortField + " " + params.Order)
}

// CreatePage assembles the response body for one page of results. Links are
// derived from the request URL with only the page parameter swapped.
func CreatePage(c *gin.Context, results interface{}, total int64, params PaginationParams) Page {
	page := Page{
		Count:   total,
		Results: results,
	}

	lastPage := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	if params.Page < lastPage {
		page.Next = pageLink(c, params.Page+1)
	}
	if params.Page > 1 {
		page.Previous = pageLink(c, params.Page-1)
	}

	return page
}

func pageLink(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	link := u.String()
	if c.Request.Host != "" && !u.IsAbs() {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		link = fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, link)
	}
	// Guard against malformed escapes from the raw query
	if _, err := url.Parse(link); err != nil {
		link = u.Path
	}
	return &link
}
