// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	zlog "github.com/rs/zerolog/log"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PaginationQuery holds the sanitized pagination parameters of a request,
// ready to be turned into LIMIT/OFFSET clauses.
type PaginationQuery struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePaginationParams reads 'page' and 'limit' from the query string,
// falling back to the defaults on missing or invalid values and capping
// the limit at MaxLimit.
func ParsePaginationParams(c *fiber.Ctx) PaginationQuery {
	pageStr := c.Query("page", strconv.Itoa(DefaultPage))
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		if pageStr != strconv.Itoa(DefaultPage) {
			zlog.Warn().Str("query_param", "page").Str("value", pageStr).Int("default", DefaultPage).Msg("Invalid 'page' query parameter, using default")
		}
		page = DefaultPage
	}

	limitStr := c.Query("limit", strconv.Itoa(DefaultLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		if limitStr != strconv.Itoa(DefaultLimit) {
			zlog.Warn().Str("query_param", "limit").Str("value", limitStr).Int("default", DefaultLimit).Msg("Invalid 'limit' query parameter, using default")
		}
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		zlog.Warn().Int("requested_limit", limit).Int("max_limit", MaxLimit).Msg("Requested 'limit' exceeds maximum, capping")
		limit = MaxLimit
	}

	return PaginationQuery{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// PaginationMeta is the page navigation block sent alongside paginated data.
type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

// BuildPaginationMeta derives the metadata from the total row count and the
// sanitized page/limit values.
func BuildPaginationMeta(totalItems, limit, page int) PaginationMeta {
	totalPages := 0
	if totalItems > 0 && limit > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(limit)))
	} else if totalItems > 0 {
		totalPages = 1
	}

	currentPage := page
	if currentPage > totalPages && totalPages > 0 {
		currentPage = totalPages
	} else if totalPages == 0 && currentPage > 1 {
		currentPage = 1
	}

	return PaginationMeta{
		CurrentPage: currentPage,
		PerPage:     limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
	}
}

// PaginatedResponse wraps one page of data with its pagination metadata in
// the standard API envelope.
type PaginatedResponse[T any] struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    []T            `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

// NewPaginatedResponse builds a PaginatedResponse, normalizing nil data to
// an empty slice so the JSON is always an array.
func NewPaginatedResponse[T any](message string, data []T, meta PaginationMeta) PaginatedResponse[T] {
	if data == nil {
		data = make([]T, 0)
	}
	return PaginatedResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	}
}
