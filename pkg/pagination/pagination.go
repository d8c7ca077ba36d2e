// Package pagination parses and carries limit/offset paging parameters.
package pagination

import (
	"net/url"
	"strconv"

	dErrors "unitbridge/pkg/domain-errors"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a validated limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// Default returns the first page with the default size.
func Default() Page {
	return Page{Limit: DefaultLimit}
}

// FromQuery parses "limit" and "offset" from query values. Missing values use
// the defaults; malformed or out-of-range values are validation errors.
func FromQuery(q url.Values) (Page, error) {
	page := Default()
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			return Page{}, dErrors.New(dErrors.CodeValidation, "limit must be an integer between 1 and "+strconv.Itoa(MaxLimit))
		}
		page.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return Page{}, dErrors.New(dErrors.CodeValidation, "offset must be a non-negative integer")
		}
		page.Offset = offset
	}
	return page, nil
}

// Normalize clamps a page built in code to the accepted range.
func (p Page) Normalize() Page {
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Window returns the [start, end) slice bounds of this page over n items.
func (p Page) Window(n int) (int, int) {
	p = p.Normalize()
	start := min(p.Offset, n)
	end := min(start+p.Limit, n)
	return start, end
}
