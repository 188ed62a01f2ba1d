package db_models

import (
	"time"

	"github.com/google/uuid"

	"flowstate/internal/fieldmap"
)

// BaseModel holds the store-generated columns shared by every table.
type BaseModel struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// baseFields declares the read-only id and timestamp columns for T.
func baseFields[T any](base func(*T) *BaseModel) []fieldmap.Field[T] {
	return []fieldmap.Field[T]{
		fieldmap.UUID("id", "id", func(r *T) *uuid.UUID { return &base(r).ID }).ReadOnly(),
		fieldmap.Time("createdAt", "created_at", func(r *T) *time.Time { return &base(r).CreatedAt }).ReadOnly(),
		fieldmap.Time("updatedAt", "updated_at", func(r *T) *time.Time { return &base(r).UpdatedAt }).ReadOnly(),
	}
}

// columns orders a table as id, entity columns, created_at, updated_at.
func columns[T any](base func(*T) *BaseModel, rest ...fieldmap.Field[T]) []fieldmap.Field[T] {
	b := baseFields(base)
	out := make([]fieldmap.Field[T], 0, len(rest)+len(b))
	out = append(out, b[0])
	out = append(out, rest...)
	return append(out, b[1:]...)
}
