package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
)

type FlowSessionRepository interface {
	Find(ctx context.Context, ownerID uuid.UUID, opts FindOptions) ([]*db_models.FlowSession, error)
	FindOne(ctx context.Context, id, ownerID uuid.UUID) (*db_models.FlowSession, error)
	Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.FlowSession, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*db_models.FlowSession, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (*db_models.FlowSession, error)
}

type flowSessionRepository struct {
	table *table[db_models.FlowSession]
}

func NewFlowSessionRepository(db *gorm.DB, cfg Config) FlowSessionRepository {
	return &flowSessionRepository{
		table: newTable(db, db_models.FlowSessionMapping, "start_time", cfg),
	}
}

// Find returns the owner's sessions, most recent start first. SessionID in
// opts does not apply to sessions and is ignored.
func (r *flowSessionRepository) Find(ctx context.Context, ownerID uuid.UUID, opts FindOptions) ([]*db_models.FlowSession, error) {
	opts.SessionID = nil
	return r.table.find(ctx, r.table.ownedBy(ownerID), opts)
}

func (r *flowSessionRepository) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*db_models.FlowSession, error) {
	return r.table.findOne(ctx, r.table.owned(id, ownerID))
}

func (r *flowSessionRepository) Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.FlowSession, error) {
	return r.table.create(ctx, ownerID, fields)
}

// Update never upserts: the record is addressed by id.
func (r *flowSessionRepository) Update(ctx context.Context, id, ownerID uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*db_models.FlowSession, error) {
	opts.Upsert = false
	return r.table.update(ctx, r.table.owned(id, ownerID), ownerID, set, opts)
}

func (r *flowSessionRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (*db_models.FlowSession, error) {
	return r.table.delete(ctx, r.table.owned(id, ownerID))
}
