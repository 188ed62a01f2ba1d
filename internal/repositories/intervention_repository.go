package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
)

type InterventionRepository interface {
	Find(ctx context.Context, ownerID uuid.UUID, opts FindOptions) ([]*db_models.Intervention, error)
	FindOne(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Intervention, error)
	Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.Intervention, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*db_models.Intervention, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Intervention, error)
}

type interventionRepository struct {
	table *table[db_models.Intervention]
}

func NewInterventionRepository(db *gorm.DB, cfg Config) InterventionRepository {
	return &interventionRepository{
		table: newTable(db, db_models.InterventionMapping, "timestamp", cfg),
	}
}

func (r *interventionRepository) Find(ctx context.Context, ownerID uuid.UUID, opts FindOptions) ([]*db_models.Intervention, error) {
	return r.table.find(ctx, r.table.ownedBy(ownerID), opts)
}

func (r *interventionRepository) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Intervention, error) {
	return r.table.findOne(ctx, r.table.owned(id, ownerID))
}

func (r *interventionRepository) Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.Intervention, error) {
	return r.table.create(ctx, ownerID, fields)
}

// Update changes completed and effectiveness only; other keys are dropped.
// It never upserts.
func (r *interventionRepository) Update(ctx context.Context, id, ownerID uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*db_models.Intervention, error) {
	opts.Upsert = false
	return r.table.update(ctx, r.table.owned(id, ownerID), ownerID, set, opts)
}

func (r *interventionRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Intervention, error) {
	return r.table.delete(ctx, r.table.owned(id, ownerID))
}
