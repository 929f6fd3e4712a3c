package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func parseWithQuery(t *testing.T, query string) PaginationQuery {
	t.Helper()
	app := fiber.New()
	var result PaginationQuery
	app.Get("/", func(c *fiber.Ctx) error {
		result = ParsePaginationParams(c)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	resp.Body.Close()
	return result
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedPage   int
		expectedLimit  int
		expectedOffset int
	}{
		{"Defaults", "", 1, 10, 0},
		{"Explicit values", "?page=3&limit=20", 3, 20, 40},
		{"Invalid page falls back", "?page=zero&limit=20", 1, 20, 0},
		{"Negative limit falls back", "?page=2&limit=-5", 2, 10, 10},
		{"Limit capped at maximum", "?limit=5000", 1, MaxLimit, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := parseWithQuery(t, tc.query)
			assert.Equal(t, tc.expectedPage, result.Page)
			assert.Equal(t, tc.expectedLimit, result.Limit)
			assert.Equal(t, tc.expectedOffset, result.Offset)
		})
	}
}

func TestBuildPaginationMeta(t *testing.T) {
	tests := []struct {
		name          string
		totalItems    int
		limit         int
		page          int
		expectedPages int
		expectedPage  int
	}{
		{"Exact division", 20, 10, 1, 2, 1},
		{"Remainder adds a page", 21, 10, 1, 3, 1},
		{"Empty result set", 0, 10, 1, 0, 1},
		{"Page beyond the end is clamped", 10, 10, 5, 1, 1},
		{"Empty set with high page resets to first", 0, 10, 7, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meta := BuildPaginationMeta(tc.totalItems, tc.limit, tc.page)
			assert.Equal(t, tc.expectedPages, meta.TotalPages)
			assert.Equal(t, tc.expectedPage, meta.CurrentPage)
			assert.Equal(t, tc.totalItems, meta.TotalItems)
			assert.Equal(t, tc.limit, meta.PerPage)
		})
	}
}

func TestNewPaginatedResponse_NormalizesNilData(t *testing.T) {
	resp := NewPaginatedResponse[string]("ok", nil, PaginationMeta{CurrentPage: 1, PerPage: 10})
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.True(t, resp.Success)
}
