package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HIMU202508/TicketingSystem/internal/shared/constants"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip for this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ValidatePagination normalizes page and limit: page defaults to 1, limit defaults to
// defaultLimit when below 1 and is capped at maxLimit.
func ValidatePagination(page, limit, defaultLimit, maxLimit int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// ParsePagination reads the page and limit query parameters.
// Malformed values fall back to the defaults instead of failing the request.
func ParsePagination(c *gin.Context, defaultLimit, maxLimit int) Pagination {
	return ValidatePagination(
		parseQueryInt(c, "page", constants.DefaultPage),
		parseQueryInt(c, "limit", defaultLimit),
		defaultLimit,
		maxLimit,
	)
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
