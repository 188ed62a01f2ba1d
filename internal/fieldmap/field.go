// Package fieldmap declares, per entity, how nested domain attribute paths map
// onto flat table columns. A Mapping is the single source of truth used to
// default new records, encode them for insertion, decode stored rows and build
// partial-update statements.
package fieldmap

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a domain path.
type Kind uint8

const (
	KindScalar Kind = iota + 1
	KindArray
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Type is the value type carried by a column.
type Type uint8

const (
	TypeString Type = iota + 1
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeUUID
	TypeJSON
	TypeStrings
	TypeInts
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeTime:
		return "time"
	case TypeUUID:
		return "uuid"
	case TypeJSON:
		return "json"
	case TypeStrings:
		return "[]string"
	case TypeInts:
		return "[]int"
	default:
		return "unknown"
	}
}

// Kind reports whether values of this type are stored in a list column.
func (t Type) Kind() Kind {
	if t == TypeStrings || t == TypeInts {
		return KindArray
	}
	return KindScalar
}

type mode uint8

const (
	modeMutable mode = iota
	modeImmutable
	modeReadOnly
)

// Field maps one domain path to one column of T.
type Field[T any] struct {
	Path     string
	Column   string
	Type     Type
	Default  any
	Nullable bool

	mode      mode
	defaultAt func(now time.Time) any
	get       func(*T) any
	set       func(*T, any)
}

// Immutable marks a field that is written on insert but never updated.
func (f Field[T]) Immutable() Field[T] {
	f.mode = modeImmutable
	return f
}

// ReadOnly marks a field generated by the store (identifiers, timestamps).
func (f Field[T]) ReadOnly() Field[T] {
	f.mode = modeReadOnly
	return f
}

// WithDefault overrides the value used when the field is absent on create.
func (f Field[T]) WithDefault(v any) Field[T] {
	f.Default = v
	return f
}

// DefaultNow makes the field default to the creation time.
func (f Field[T]) DefaultNow() Field[T] {
	f.defaultAt = func(now time.Time) any { return now }
	return f
}

// Updatable reports whether the statement builder accepts the field.
func (f Field[T]) Updatable() bool { return f.mode == modeMutable }

// Insertable reports whether the field is part of the insert column list.
func (f Field[T]) Insertable() bool { return f.mode != modeReadOnly }

// Group returns the name of the group the field belongs to, or "".
func (f Field[T]) Group() string {
	if i := strings.IndexByte(f.Path, '.'); i > 0 {
		return f.Path[:i]
	}
	return ""
}

func (f Field[T]) defaultValue(now time.Time) any {
	if f.defaultAt != nil {
		return f.defaultAt(now)
	}
	return f.Default
}

// String maps a string to a text column with default def.
func String[T any](path, column, def string, ref func(*T) *string) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeString, Default: def,
		get: func(r *T) any { return *ref(r) },
		set: func(r *T, v any) {
			s, _ := v.(string)
			*ref(r) = s
		},
	}
}

// OptString maps a *string to a nullable text column. Nil stores NULL.
func OptString[T any](path, column string, ref func(*T) **string) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeString, Nullable: true,
		get: func(r *T) any {
			if p := *ref(r); p != nil {
				return *p
			}
			return nil
		},
		set: func(r *T, v any) {
			s, ok := v.(string)
			if !ok {
				*ref(r) = nil
				return
			}
			*ref(r) = &s
		},
	}
}

// Int maps an int to an integer column with default def.
func Int[T any](path, column string, def int, ref func(*T) *int) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeInt, Default: def,
		get: func(r *T) any { return *ref(r) },
		set: func(r *T, v any) {
			n, _ := v.(int)
			*ref(r) = n
		},
	}
}

// OptInt maps an *int to a nullable integer column.
func OptInt[T any](path, column string, ref func(*T) **int) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeInt, Nullable: true,
		get: func(r *T) any {
			if p := *ref(r); p != nil {
				return *p
			}
			return nil
		},
		set: func(r *T, v any) {
			n, ok := v.(int)
			if !ok {
				*ref(r) = nil
				return
			}
			*ref(r) = &n
		},
	}
}

// Float maps a float64 to a double precision column with default def.
func Float[T any](path, column string, def float64, ref func(*T) *float64) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeFloat, Default: def,
		get: func(r *T) any { return *ref(r) },
		set: func(r *T, v any) {
			f, _ := v.(float64)
			*ref(r) = f
		},
	}
}

// Bool maps a bool to a boolean column with default def.
func Bool[T any](path, column string, def bool, ref func(*T) *bool) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeBool, Default: def,
		get: func(r *T) any { return *ref(r) },
		set: func(r *T, v any) {
			b, _ := v.(bool)
			*ref(r) = b
		},
	}
}

// Time maps a time.Time to a timestamptz column. Chain DefaultNow for a creation-time default.
func Time[T any](path, column string, ref func(*T) *time.Time) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeTime,
		get: func(r *T) any { return *ref(r) },
		set: func(r *T, v any) {
			t, _ := v.(time.Time)
			*ref(r) = t
		},
	}
}

// OptTime maps a *time.Time to a nullable timestamptz column.
func OptTime[T any](path, column string, ref func(*T) **time.Time) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeTime, Nullable: true,
		get: func(r *T) any {
			if p := *ref(r); p != nil {
				return *p
			}
			return nil
		},
		set: func(r *T, v any) {
			t, ok := v.(time.Time)
			if !ok {
				*ref(r) = nil
				return
			}
			*ref(r) = &t
		},
	}
}

// UUID maps a uuid.UUID to a uuid column.
func UUID[T any](path, column string, ref func(*T) *uuid.UUID) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeUUID,
		get: func(r *T) any { return *ref(r) },
		set: func(r *T, v any) {
			id, _ := v.(uuid.UUID)
			*ref(r) = id
		},
	}
}

// OptUUID maps a *uuid.UUID to a nullable uuid column.
func OptUUID[T any](path, column string, ref func(*T) **uuid.UUID) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeUUID, Nullable: true,
		get: func(r *T) any {
			if p := *ref(r); p != nil {
				return *p
			}
			return nil
		},
		set: func(r *T, v any) {
			id, ok := v.(uuid.UUID)
			if !ok {
				*ref(r) = nil
				return
			}
			*ref(r) = &id
		},
	}
}

// Strings maps a []string to a text[] column. The default is an empty list.
func Strings[T any](path, column string, ref func(*T) *[]string) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeStrings, Default: []string{},
		get: func(r *T) any { return *ref(r) },
		set: func(r *T, v any) {
			src, _ := v.([]string)
			dst := make([]string, len(src))
			copy(dst, src)
			*ref(r) = dst
		},
	}
}

// Ints maps a []int to an integer[] column.
func Ints[T any](path, column string, def []int, ref func(*T) *[]int) Field[T] {
	if def == nil {
		def = []int{}
	}
	return Field[T]{
		Path: path, Column: column, Type: TypeInts, Default: def,
		get: func(r *T) any { return *ref(r) },
		set: func(r *T, v any) {
			src, _ := v.([]int)
			dst := make([]int, len(src))
			copy(dst, src)
			*ref(r) = dst
		},
	}
}

// JSON maps a free-form object to a jsonb column. The default is {}.
func JSON[T any](path, column string, ref func(*T) *map[string]any) Field[T] {
	return Field[T]{
		Path: path, Column: column, Type: TypeJSON, Default: map[string]any{},
		get: func(r *T) any { return *ref(r) },
		set: func(r *T, v any) {
			src, _ := v.(map[string]any)
			dst := make(map[string]any, len(src))
			for k, val := range src {
				dst[k] = val
			}
			*ref(r) = dst
		},
	}
}

// Group declares a nested sub-object flattened into the columns of its
// fields. An optional group is absent from a decoded record when its anchor
// column is NULL.
type Group[T any] struct {
	Name     string
	Optional bool
	Anchor   string
	Present  func(*T) bool
	Clear    func(*T)
}
