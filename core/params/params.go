package params

import (
	"strconv"

	"event-registry/core/constants"

	"github.com/labstack/echo/v4"
)

// QueryParams carries common list parameters (pagination + substring search).
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// FromContext reads pagination params from the query string, applying
// defaults and clamping the page size.
func FromContext(c echo.Context) QueryParams {
	p := QueryParams{
		PageNumber: 1,
		PageSize:   constants.DefaultPageSize,
		Search:     c.QueryParam("search"),
	}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		p.PageSize = v
	}
	if p.PageSize > constants.MaxPageSize {
		p.PageSize = constants.MaxPageSize
	}

	return p
}
