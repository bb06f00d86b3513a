package pagination

import (
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

// fetchPage emulates a keyset-paginated store over a sorted id slice: rows
// with id strictly greater than the cursor, at most limit of them.
func fetchPage(ids []int, cursor *int, limit int) []int {
	var page []int
	for _, id := range ids {
		if cursor != nil && id <= *cursor {
			continue
		}
		if len(page) == limit {
			break
		}
		page = append(page, id)
	}
	return page
}

// walk follows next cursors until exhaustion and returns every fetched page,
// including a trailing empty page when the exhaustion heuristic misfires.
func walk(t *testing.T, ids []int, limit int) [][]int {
	t.Helper()
	var pages [][]int
	var cursor *int
	for i := 0; ; i++ {
		if i > len(ids)+2 {
			t.Fatalf("pagination did not terminate after %d pages", i)
		}
		page := fetchPage(ids, cursor, limit)
		pages = append(pages, page)
		cursor = NextCursor(page, limit, func(id int) int { return id })
		if cursor == nil {
			return pages
		}
	}
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		limit   *int
		want    int
		wantErr error
	}{
		{"absent defaults", nil, DefaultLimit, nil},
		{"explicit zero passes through", intPtr(0), 0, nil},
		{"regular value", intPtr(7), 7, nil},
		{"max is allowed", intPtr(MaxLimit), MaxLimit, nil},
		{"huge is clamped", intPtr(5000), MaxLimit, nil},
		{"negative is rejected", intPtr(-1), 0, ErrNegativeLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Params{Limit: tt.limit}.NormalizeLimit()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NormalizeLimit() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("NormalizeLimit() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextCursorFullPage(t *testing.T) {
	rows := []int{3, 8, 12}
	cur := NextCursor(rows, 3, func(id int) int { return id })
	if cur == nil || *cur != 12 {
		t.Fatalf("NextCursor = %v, want 12", cur)
	}
}

func TestNextCursorShortPage(t *testing.T) {
	rows := []int{3, 8}
	if cur := NextCursor(rows, 3, func(id int) int { return id }); cur != nil {
		t.Fatalf("NextCursor = %d, want nil on short page", *cur)
	}
}

func TestNextCursorZeroLimit(t *testing.T) {
	if cur := NextCursor([]int{}, 0, func(id int) int { return id }); cur != nil {
		t.Fatalf("NextCursor = %d, want nil for limit 0", *cur)
	}
}

func TestWalkMonotonicAndBounded(t *testing.T) {
	ids := []int{1, 4, 9, 10, 11, 15, 22, 23, 40}
	limit := 4

	pages := walk(t, ids, limit)

	prev := -1
	seen := 0
	for _, page := range pages {
		if len(page) > limit {
			t.Fatalf("page of %d rows exceeds limit %d", len(page), limit)
		}
		for _, id := range page {
			if id <= prev {
				t.Fatalf("id %d not strictly greater than previous %d", id, prev)
			}
			prev = id
			seen++
		}
	}
	if seen != len(ids) {
		t.Fatalf("walk returned %d ids, want %d", seen, len(ids))
	}
}

// When the row count is an exact multiple of the limit, the final full page
// still yields a cursor and the walk ends with one spurious empty fetch.
func TestWalkExhaustionQuirk(t *testing.T) {
	ids := []int{2, 3, 5, 7, 11, 13}
	limit := 3

	pages := walk(t, ids, limit)

	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 2 full + 1 spurious empty", len(pages))
	}
	if len(pages[0]) != 3 || len(pages[1]) != 3 {
		t.Fatalf("page sizes = [%d %d], want [3 3]", len(pages[0]), len(pages[1]))
	}
	if len(pages[2]) != 0 {
		t.Fatalf("final page has %d rows, want the spurious empty page", len(pages[2]))
	}
}

// Five matching rows at limit 2: pages of sizes [2 2 1], no extra fetch since
// the last page is short.
func TestWalkFiveRowsLimitTwo(t *testing.T) {
	ids := []int{10, 20, 30, 40, 50}

	pages := walk(t, ids, 2)

	want := []int{2, 2, 1}
	if len(pages) != len(want) {
		t.Fatalf("got %d pages, want %d", len(pages), len(want))
	}
	for i, n := range want {
		if len(pages[i]) != n {
			t.Fatalf("page %d has %d rows, want %d", i, len(pages[i]), n)
		}
	}
}
