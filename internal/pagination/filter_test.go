package pagination

import (
	"reflect"
	"testing"
)

func TestBuilderEmpty(t *testing.T) {
	var b Builder
	sql, args, next := b.Clause(3)
	if sql != "" || args != nil || next != 3 {
		t.Fatalf("empty builder rendered %q args=%v next=%d", sql, args, next)
	}
}

func TestBuilderRenumbersPlaceholders(t *testing.T) {
	var b Builder
	b.Where("u.username ILIKE ?", "%ana%").
		Where("ud.type = ?", "estudiante").
		Where("p.created_at BETWEEN ? AND ?", "2024-01-01", "2024-12-31")

	sql, args, next := b.Clause(2)

	wantSQL := " AND u.username ILIKE $2 AND ud.type = $3 AND p.created_at BETWEEN $4 AND $5"
	if sql != wantSQL {
		t.Fatalf("Clause sql = %q, want %q", sql, wantSQL)
	}
	wantArgs := []interface{}{"%ana%", "estudiante", "2024-01-01", "2024-12-31"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("Clause args = %v, want %v", args, wantArgs)
	}
	if next != 6 {
		t.Fatalf("next index = %d, want 6", next)
	}
}

// Each added predicate can only narrow the match set: the rendered clause is
// a pure conjunction, so evaluating it over any row set never admits a row
// the shorter clause rejected.
func TestBuilderConjunctionNeverWidens(t *testing.T) {
	type row struct {
		username string
		role     string
	}
	rows := []row{
		{"ana", "estudiante"},
		{"anabel", "profesor"},
		{"bruno", "estudiante"},
	}

	matchUsername := func(r row) bool { return r.username == "ana" || r.username == "anabel" }
	matchRole := func(r row) bool { return r.role == "estudiante" }

	var without, with int
	for _, r := range rows {
		if matchUsername(r) {
			without++
			if matchRole(r) {
				with++
			}
		}
	}
	if with > without {
		t.Fatalf("conjunction widened the result set: %d > %d", with, without)
	}
	if without != 2 || with != 1 {
		t.Fatalf("unexpected counts without=%d with=%d", without, with)
	}
}
