// Package pagination implements the keyset (cursor) pagination contract used
// by the user and payment listing endpoints: rows are ordered by a strictly
// increasing numeric id, a cursor restricts results to ids strictly greater
// than it, and the next cursor is the last id of a full page.
package pagination

import "errors"

const (
	// DefaultLimit applies when the caller omits a limit.
	DefaultLimit = 20
	// MaxLimit is the clamp for oversized limits.
	MaxLimit = 100
)

// ErrNegativeLimit is returned for limits below zero. Zero itself is legal
// and yields an empty page with no cursor.
var ErrNegativeLimit = errors.New("pagination: limit must not be negative")

// Params is the request body shared by keyset-paginated endpoints.
// Limit is a pointer so an absent field can be told apart from an explicit 0.
type Params struct {
	Limit      *int `json:"limit"`
	LastSeenID *int `json:"last_seen_id"`
}

// NormalizeLimit resolves the effective page size: absent → DefaultLimit,
// negative → ErrNegativeLimit, above MaxLimit → MaxLimit. An explicit zero
// passes through unchanged.
func (p Params) NormalizeLimit() (int, error) {
	if p.Limit == nil {
		return DefaultLimit, nil
	}
	limit := *p.Limit
	if limit < 0 {
		return 0, ErrNegativeLimit
	}
	if limit > MaxLimit {
		return MaxLimit, nil
	}
	return limit, nil
}

// Cursor returns the continuation condition value, or nil for the first page.
func (p Params) Cursor() *int {
	return p.LastSeenID
}

// NextCursor returns the id of the last row if and only if the page is full.
// A short page is taken to mean the data is exhausted. Note the deliberate
// false negative: when exactly `limit` rows remained, the returned cursor
// resolves to an empty page on the following call.
func NextCursor[T any](rows []T, limit int, id func(T) int) *int {
	if limit <= 0 || len(rows) != limit {
		return nil
	}
	last := id(rows[len(rows)-1])
	return &last
}
