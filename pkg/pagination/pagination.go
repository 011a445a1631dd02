// Package pagination extracts optional limit/offset parameters. The report
// listing is clinic-scale and returns everything by default; callers opt in
// to paging explicitly by passing a limit.
package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// MaxLimit caps an explicitly requested page size.
const MaxLimit = 500

// Params holds pagination parameters extracted from a request. A zero Limit
// means "no paging": return the full result set.
type Params struct {
	Limit  int
	Offset int
}

// FromContext extracts pagination parameters from the echo context.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// Paged reports whether the caller asked for an explicit page.
func (p Params) Paged() bool {
	return p.Limit > 0
}
