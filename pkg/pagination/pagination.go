package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Params holds the skip/limit window extracted from a request.
type Params struct {
	Skip  int
	Limit int
}

// FromContext extracts skip and limit query parameters from the echo
// context, applying the default window when absent and clamping limit.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}

	return Params{Skip: skip, Limit: limit}
}

// Next returns the skip value for the window after this one.
func (p Params) Next() int {
	return p.Skip + p.Limit
}
