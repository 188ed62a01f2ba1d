package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
)

// UserSettingsRepository is keyed by owner alone: a user has at most one
// settings row.
type UserSettingsRepository interface {
	Find(ctx context.Context, ownerID uuid.UUID, opts FindOptions) ([]*db_models.UserSettings, error)
	FindOne(ctx context.Context, ownerID uuid.UUID) (*db_models.UserSettings, error)
	Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.UserSettings, error)
	Update(ctx context.Context, ownerID uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*db_models.UserSettings, error)
	Delete(ctx context.Context, ownerID uuid.UUID) (*db_models.UserSettings, error)
}

type userSettingsRepository struct {
	table *table[db_models.UserSettings]
}

func NewUserSettingsRepository(db *gorm.DB, cfg Config) UserSettingsRepository {
	return &userSettingsRepository{
		table: newTable(db, db_models.UserSettingsMapping, "created_at", cfg),
	}
}

func (r *userSettingsRepository) Find(ctx context.Context, ownerID uuid.UUID, opts FindOptions) ([]*db_models.UserSettings, error) {
	opts.SessionID = nil
	return r.table.find(ctx, r.table.ownedBy(ownerID), opts)
}

func (r *userSettingsRepository) FindOne(ctx context.Context, ownerID uuid.UUID) (*db_models.UserSettings, error) {
	return r.table.findOne(ctx, r.table.ownedBy(ownerID))
}

func (r *userSettingsRepository) Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.UserSettings, error) {
	return r.table.create(ctx, ownerID, fields)
}

func (r *userSettingsRepository) Update(ctx context.Context, ownerID uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*db_models.UserSettings, error) {
	return r.table.update(ctx, r.table.ownedBy(ownerID), ownerID, set, opts)
}

func (r *userSettingsRepository) Delete(ctx context.Context, ownerID uuid.UUID) (*db_models.UserSettings, error) {
	return r.table.delete(ctx, r.table.ownedBy(ownerID))
}
