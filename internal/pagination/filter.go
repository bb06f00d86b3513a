package pagination

import (
	"strconv"
	"strings"
)

// Builder accumulates a conjunction of SQL predicates with their arguments.
// Predicates use `?` placeholders which are renumbered into PostgreSQL
// positional parameters when the clause is rendered, so filters compose with
// whatever fixed arguments the base query already carries.
type Builder struct {
	conds []string
	args  []interface{}
}

// Where appends one predicate to the conjunction. Each `?` in cond must have
// a matching argument.
func (b *Builder) Where(cond string, args ...interface{}) *Builder {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
	return b
}

// Empty reports whether no predicate was added.
func (b *Builder) Empty() bool {
	return len(b.conds) == 0
}

// Clause renders the accumulated predicates as " AND p1 AND p2 ..." with
// positional parameters starting at next, and returns the rendered SQL, the
// argument slice, and the next free parameter index. An empty builder
// renders to "".
func (b *Builder) Clause(next int) (string, []interface{}, int) {
	if len(b.conds) == 0 {
		return "", nil, next
	}

	var sb strings.Builder
	argIdx := next
	for _, cond := range b.conds {
		sb.WriteString(" AND ")
		for _, ch := range cond {
			if ch == '?' {
				sb.WriteString("$" + strconv.Itoa(argIdx))
				argIdx++
				continue
			}
			sb.WriteRune(ch)
		}
	}
	return sb.String(), b.args, argIdx
}
