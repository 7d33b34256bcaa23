package common

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination normalized page/limit pair
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NormalizePagination clamps page to >= 1 and limit to [1, MaxLimit], defaulting to DefaultLimit
func NormalizePagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// ParsePagination reads ?page= and ?limit= from the request
func ParsePagination(c *gin.Context) Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))     //nolint:errcheck // invalid → default
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10")) //nolint:errcheck // invalid → default
	return NormalizePagination(page, limit)
}
