package fieldmap

import (
	"fmt"
)

// Row is one result row keyed by column name, as scanned from the driver.
type Row map[string]any

// Encode produces the insert statement for rec: every insertable column in
// canonical order and its driver-ready value. Columns of an absent optional
// group are bound to NULL.
func (m *Mapping[T]) Encode(rec *T) *Statement {
	st := &Statement{Table: m.table}
	for _, f := range m.fields {
		if !f.Insertable() {
			continue
		}
		st.Columns = append(st.Columns, f.Column)
		if gname := f.Group(); gname != "" {
			if g := m.groups[gname]; g.Optional && !g.Present(rec) {
				st.Args = append(st.Args, nil)
				continue
			}
		}
		st.Args = append(st.Args, param(f.Type, f.get(rec)))
	}
	return st
}

// Values is Encode including store-generated columns, in canonical order.
func (m *Mapping[T]) Values(rec *T) *Statement {
	st := &Statement{Table: m.table, Columns: m.Columns()}
	for _, f := range m.fields {
		if gname := f.Group(); gname != "" {
			if g := m.groups[gname]; g.Optional && !g.Present(rec) {
				st.Args = append(st.Args, nil)
				continue
			}
		}
		st.Args = append(st.Args, param(f.Type, f.get(rec)))
	}
	return st
}

// Decode builds a record from a stored row. Missing or NULL columns leave the
// zero value (empty list for arrays); an optional group is populated only
// when its anchor column is non-NULL.
func (m *Mapping[T]) Decode(row Row) (*T, error) {
	rec := new(T)
	for _, g := range m.groups {
		if g.Optional {
			g.Clear(rec)
		}
	}
	for _, f := range m.fields {
		if gname := f.Group(); gname != "" {
			if g := m.groups[gname]; g.Optional && row[g.Anchor] == nil {
				continue
			}
		}
		v, err := coerce(f.Type, row[f.Column], true)
		if err != nil {
			return nil, fmt.Errorf("decode %s.%s: %w", m.table, f.Column, err)
		}
		f.set(rec, v)
	}
	return rec, nil
}
