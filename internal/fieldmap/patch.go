package fieldmap

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Patch is a document-shaped change set. Keys are leaf paths
// ("notifications.enabled"), top-level field names or group names whose value
// is a nested object of leaves. A group name mapped to nil clears an optional
// group. Keys the mapping does not know are ignored.
type Patch map[string]any

type assignment struct {
	idx   int
	value any
	keep  bool
}

// resolve flattens p into coerced assignments sorted by canonical column
// order. On insert immutable fields are accepted; on update only mutable
// ones are.
func (m *Mapping[T]) resolve(p Patch, insert bool) ([]assignment, error) {
	set := make(map[int]any, len(p))

	accept := func(path string, v any) error {
		i, ok := m.byPath[path]
		if !ok {
			return nil
		}
		f := m.fields[i]
		if insert && !f.Insertable() || !insert && !f.Updatable() {
			return nil
		}
		if v == nil && !f.Nullable {
			if insert {
				return nil
			}
			return fmt.Errorf("%w: %s cannot be null", ErrInvalidValue, path)
		}
		cv, err := coerce(f.Type, v, false)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		set[i] = cv
		return nil
	}

	for key, v := range p {
		if _, ok := m.byPath[key]; ok {
			if err := accept(key, v); err != nil {
				return nil, err
			}
			continue
		}
		g, ok := m.groups[key]
		if !ok {
			continue
		}
		switch nested := v.(type) {
		case nil:
			if !g.Optional {
				return nil, fmt.Errorf("%w: %s cannot be null", ErrInvalidValue, key)
			}
			if insert {
				continue
			}
			for i, f := range m.fields {
				if f.Group() == key && f.Updatable() {
					set[i] = nil
				}
			}
		case map[string]any:
			for leaf, lv := range nested {
				if err := accept(key+"."+leaf, lv); err != nil {
					return nil, err
				}
			}
		case Patch:
			for leaf, lv := range nested {
				if err := accept(key+"."+leaf, lv); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("%w: %s expects an object, got %T", ErrInvalidValue, key, v)
		}
	}

	out := make([]assignment, 0, len(set))
	for i, v := range set {
		out = append(out, assignment{idx: i, value: v})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].idx < out[b].idx })
	return out, nil
}

// Apply writes the insertable values of p onto rec. Supplying any leaf of an
// absent optional group allocates the group with its defaults first.
func (m *Mapping[T]) Apply(rec *T, p Patch, now time.Time) error {
	assignments, err := m.resolve(p, true)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		f := m.fields[a.idx]
		if gname := f.Group(); gname != "" {
			if g := m.groups[gname]; g.Optional && !g.Present(rec) {
				m.fill(rec, gname, now)
			}
		}
		f.set(rec, a.value)
	}
	return nil
}

// Paths lists the leaf paths a patch would touch on update, in canonical
// order. Unknown and non-updatable keys are omitted.
func (m *Mapping[T]) Paths(p Patch) ([]string, error) {
	assignments, err := m.resolve(p, false)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(assignments))
	for i, a := range assignments {
		paths[i] = m.fields[a.idx].Path
	}
	return paths, nil
}

func (p Patch) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "{" + strings.Join(keys, ",") + "}"
}
