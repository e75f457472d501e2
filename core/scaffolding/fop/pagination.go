package fop

import (
	"fmt"
	"strconv"
)

// DefaultLimit is the page size used when the caller does not supply one.
const DefaultLimit = 100

// PageOffset represents a skip/limit window over an ordered result set.
type PageOffset struct {
	Skip  int
	Limit int
}

// NewPageOffset returns a page starting at skip holding at most limit rows.
func NewPageOffset(skip, limit int) PageOffset {
	return PageOffset{Skip: skip, Limit: limit}
}

// ParsePageOffset parses the raw query values for skip and limit. Empty
// values fall back to 0 and DefaultLimit. Negative values are rejected.
func ParsePageOffset(skip string, limit string) (PageOffset, error) {
	page := PageOffset{Skip: 0, Limit: DefaultLimit}

	if skip != "" {
		v, err := strconv.Atoi(skip)
		if err != nil {
			return PageOffset{}, &PageError{Field: "skip", Err: fmt.Errorf("skip conversion: %w", err)}
		}
		page.Skip = v
	}

	if limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil {
			return PageOffset{}, &PageError{Field: "limit", Err: fmt.Errorf("limit conversion: %w", err)}
		}
		page.Limit = v
	}

	if page.Skip < 0 {
		return PageOffset{}, &PageError{Field: "skip", Err: fmt.Errorf("skip value too small, must be 0 or larger")}
	}

	if page.Limit < 0 {
		return PageOffset{}, &PageError{Field: "limit", Err: fmt.Errorf("limit value too small, must be 0 or larger")}
	}

	return page, nil
}

// PageError identifies which paging parameter failed to parse.
type PageError struct {
	Field string
	Err   error
}

func (e *PageError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *PageError) Unwrap() error {
	return e.Err
}
