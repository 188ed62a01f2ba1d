package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
)

type MediaRepository interface {
	Find(ctx context.Context, ownerID uuid.UUID, opts FindOptions) ([]*db_models.Media, error)
	FindOne(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Media, error)
	Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.Media, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*db_models.Media, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Media, error)
}

type mediaRepository struct {
	table *table[db_models.Media]
}

func NewMediaRepository(db *gorm.DB, cfg Config) MediaRepository {
	return &mediaRepository{
		table: newTable(db, db_models.MediaMapping, "created_at", cfg),
	}
}

func (r *mediaRepository) Find(ctx context.Context, ownerID uuid.UUID, opts FindOptions) ([]*db_models.Media, error) {
	return r.table.find(ctx, r.table.ownedBy(ownerID), opts)
}

func (r *mediaRepository) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Media, error) {
	return r.table.findOne(ctx, r.table.owned(id, ownerID))
}

func (r *mediaRepository) Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.Media, error) {
	return r.table.create(ctx, ownerID, fields)
}

// Update never upserts: the record is addressed by id.
func (r *mediaRepository) Update(ctx context.Context, id, ownerID uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*db_models.Media, error) {
	opts.Upsert = false
	return r.table.update(ctx, r.table.owned(id, ownerID), ownerID, set, opts)
}

func (r *mediaRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Media, error) {
	return r.table.delete(ctx, r.table.owned(id, ownerID))
}
