package fieldmap

import (
	"fmt"
	"time"
)

// TouchColumn is refreshed by every non-empty update statement.
const TouchColumn = "updated_at"

// Mapping is the explicit path/column table for one entity type.
type Mapping[T any] struct {
	table    string
	owner    string
	key      string
	fields   []Field[T]
	groups   map[string]Group[T]
	byPath   map[string]int
	byColumn map[string]int
}

// New validates and builds a mapping. Fields keep the order given, which is
// the canonical column order used by every generated statement.
func New[T any](table, owner, key string, groups []Group[T], fields ...Field[T]) (*Mapping[T], error) {
	m := &Mapping[T]{
		table:    table,
		owner:    owner,
		key:      key,
		fields:   fields,
		groups:   make(map[string]Group[T], len(groups)),
		byPath:   make(map[string]int, len(fields)),
		byColumn: make(map[string]int, len(fields)),
	}
	if table == "" {
		return nil, fmt.Errorf("fieldmap: empty table name")
	}
	for _, g := range groups {
		if _, dup := m.groups[g.Name]; dup {
			return nil, fmt.Errorf("fieldmap: %s: duplicate group %q", table, g.Name)
		}
		if g.Optional && (g.Anchor == "" || g.Present == nil || g.Clear == nil) {
			return nil, fmt.Errorf("fieldmap: %s: optional group %q needs an anchor, Present and Clear", table, g.Name)
		}
		m.groups[g.Name] = g
	}
	for i, f := range fields {
		if f.Path == "" || f.Column == "" || f.get == nil || f.set == nil {
			return nil, fmt.Errorf("fieldmap: %s: incomplete field at position %d", table, i)
		}
		if _, dup := m.byPath[f.Path]; dup {
			return nil, fmt.Errorf("fieldmap: %s: duplicate path %q", table, f.Path)
		}
		if _, dup := m.byColumn[f.Column]; dup {
			return nil, fmt.Errorf("fieldmap: %s: duplicate column %q", table, f.Column)
		}
		if gname := f.Group(); gname != "" {
			if _, ok := m.groups[gname]; !ok {
				return nil, fmt.Errorf("fieldmap: %s: path %q belongs to undeclared group %q", table, f.Path, gname)
			}
		}
		m.byPath[f.Path] = i
		m.byColumn[f.Column] = i
	}
	for _, g := range m.groups {
		if !g.Optional {
			continue
		}
		i, ok := m.byColumn[g.Anchor]
		if !ok || fields[i].Group() != g.Name {
			return nil, fmt.Errorf("fieldmap: %s: anchor %q is not a column of group %q", table, g.Anchor, g.Name)
		}
	}
	for _, c := range []string{key, owner} {
		if _, ok := m.byColumn[c]; c != "" && !ok {
			return nil, fmt.Errorf("fieldmap: %s: unknown column %q", table, c)
		}
	}
	return m, nil
}

// MustNew is New for package-level mapping declarations.
func MustNew[T any](table, owner, key string, groups []Group[T], fields ...Field[T]) *Mapping[T] {
	m, err := New(table, owner, key, groups, fields...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Mapping[T]) Table() string { return m.table }

// Owner is the column that scopes every query to one user.
func (m *Mapping[T]) Owner() string { return m.owner }

// Key is the primary key column.
func (m *Mapping[T]) Key() string { return m.key }

// Columns lists every mapped column in canonical order.
func (m *Mapping[T]) Columns() []string {
	cols := make([]string, len(m.fields))
	for i, f := range m.fields {
		cols[i] = f.Column
	}
	return cols
}

// Column resolves a leaf path to its column.
func (m *Mapping[T]) Column(path string) (string, bool) {
	i, ok := m.byPath[path]
	if !ok {
		return "", false
	}
	return m.fields[i].Column, true
}

// Field returns the field declared for a leaf path.
func (m *Mapping[T]) Field(path string) (Field[T], bool) {
	i, ok := m.byPath[path]
	if !ok {
		return Field[T]{}, false
	}
	return m.fields[i], true
}

// Kind classifies a path. Group names report KindGroup.
func (m *Mapping[T]) Kind(path string) (Kind, bool) {
	if i, ok := m.byPath[path]; ok {
		return m.fields[i].Type.Kind(), true
	}
	if _, ok := m.groups[path]; ok {
		return KindGroup, true
	}
	return 0, false
}

// Defaults returns a record with every declared default applied. Optional
// groups are left absent.
func (m *Mapping[T]) Defaults(now time.Time) *T {
	rec := new(T)
	for _, f := range m.fields {
		if !f.Insertable() || m.optionalGroup(f) {
			continue
		}
		f.set(rec, f.defaultValue(now))
	}
	return rec
}

// SetColumn assigns a single column value on rec, coercing it to the field
// type. It is used for values the caller controls, such as the owner.
func (m *Mapping[T]) SetColumn(rec *T, column string, v any) error {
	i, ok := m.byColumn[column]
	if !ok {
		return fmt.Errorf("fieldmap: %s: unknown column %q", m.table, column)
	}
	f := m.fields[i]
	cv, err := coerce(f.Type, v, false)
	if err != nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}
	f.set(rec, cv)
	return nil
}

func (m *Mapping[T]) optionalGroup(f Field[T]) bool {
	gname := f.Group()
	if gname == "" {
		return false
	}
	return m.groups[gname].Optional
}

// fill allocates an optional group on rec and sets every leaf to its default.
func (m *Mapping[T]) fill(rec *T, gname string, now time.Time) {
	for _, f := range m.fields {
		if f.Group() == gname {
			f.set(rec, f.defaultValue(now))
		}
	}
}
