package fieldmap

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Op is a comparison operator usable in a WHERE clause.
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

// Cond is one conjunct of a WHERE clause.
type Cond struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, v any) Cond  { return Cond{Column: column, Op: OpEq, Value: v} }
func Gte(column string, v any) Cond { return Cond{Column: column, Op: OpGte, Value: v} }
func Lte(column string, v any) Cond { return Cond{Column: column, Op: OpLte, Value: v} }

// Where renders conds joined by AND with positional placeholders starting at
// $offset+1 and returns the bound values in the same order.
func Where(conds []Cond, offset int) (string, []any) {
	parts := make([]string, len(conds))
	args := make([]any, len(conds))
	for i, c := range conds {
		parts[i] = fmt.Sprintf("%s %s $%d", c.Column, c.Op, offset+i+1)
		args[i] = c.Value
	}
	return strings.Join(parts, " AND "), args
}

// Statement is an ordered column/value list produced from a record or a patch.
type Statement struct {
	Table   string
	Columns []string
	Args    []any

	// keep marks update columns that retain a stored non-NULL value and only
	// take Args[i] when the column is NULL.
	keep []bool
}

// Keeps reports whether column i is assigned as COALESCE(column, value).
func (s *Statement) Keeps(i int) bool {
	return i < len(s.keep) && s.keep[i]
}

// BuildUpdate turns a patch into an assignment list. It returns nil when no
// column would change; callers treat that as a no-op and re-read instead of
// writing. A non-empty list always ends with updated_at bound to now.
//
// Writing a leaf of an optional group also assigns the group's other leaves
// as COALESCE(column, default), so a group that was absent becomes present
// with defaults, as on create, while stored values are left alone.
func (m *Mapping[T]) BuildUpdate(p Patch, now time.Time) (*Statement, error) {
	assignments, err := m.resolve(p, false)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}
	assignments = m.completeGroups(assignments, now)

	st := &Statement{
		Table:   m.table,
		Columns: make([]string, 0, len(assignments)+1),
		Args:    make([]any, 0, len(assignments)+1),
		keep:    make([]bool, 0, len(assignments)+1),
	}
	for _, a := range assignments {
		f := m.fields[a.idx]
		st.Columns = append(st.Columns, f.Column)
		st.Args = append(st.Args, param(f.Type, a.value))
		st.keep = append(st.keep, a.keep)
	}
	st.Columns = append(st.Columns, TouchColumn)
	st.Args = append(st.Args, now)
	st.keep = append(st.keep, false)
	return st, nil
}

// completeGroups adds keep-assignments for the unassigned leaves of every
// optional group that receives a non-NULL value. The result stays in
// canonical column order.
func (m *Mapping[T]) completeGroups(assignments []assignment, now time.Time) []assignment {
	assigned := make(map[int]bool, len(assignments))
	touched := make(map[string]bool)
	for _, a := range assignments {
		assigned[a.idx] = true
		if a.value == nil {
			continue
		}
		if f := m.fields[a.idx]; m.optionalGroup(f) {
			touched[f.Group()] = true
		}
	}
	if len(touched) == 0 {
		return assignments
	}
	for i, f := range m.fields {
		if assigned[i] || !f.Updatable() || !touched[f.Group()] {
			continue
		}
		assignments = append(assignments, assignment{idx: i, value: f.defaultValue(now), keep: true})
	}
	sort.Slice(assignments, func(a, b int) bool { return assignments[a].idx < assignments[b].idx })
	return assignments
}

// SQL renders the update with the assignments bound to $1..$n and the
// conditions bound after them. The returned arguments are the full list.
func (s *Statement) SQL(conds ...Cond) (string, []any) {
	sets := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		if s.Keeps(i) {
			sets[i] = fmt.Sprintf("%s = COALESCE(%s, $%d)", c, c, i+1)
			continue
		}
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	where, whereArgs := Where(conds, len(s.Args))

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(s.Table)
	b.WriteString(" SET ")
	b.WriteString(strings.Join(sets, ", "))
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	b.WriteString(" RETURNING *")

	args := make([]any, 0, len(s.Args)+len(whereArgs))
	args = append(args, s.Args...)
	args = append(args, whereArgs...)
	return b.String(), args
}

// InsertSQL renders an INSERT of every column that returns the stored row.
func (s *Statement) InsertSQL() (string, []any) {
	marks := make([]string, len(s.Columns))
	for i := range s.Columns {
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		s.Table, strings.Join(s.Columns, ", "), strings.Join(marks, ", "))
	return q, s.Args
}
