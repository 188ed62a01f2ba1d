package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
)

type UserRepository interface {
	Find(ctx context.Context, id uuid.UUID, opts FindOptions) ([]*db_models.User, error)
	FindOne(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	Create(ctx context.Context, fields fieldmap.Patch) (*db_models.User, error)
	Update(ctx context.Context, id uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*db_models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (*db_models.User, error)
}

type userRepository struct {
	table *table[db_models.User]
}

func NewUserRepository(db *gorm.DB, cfg Config) UserRepository {
	return &userRepository{
		table: newTable(db, db_models.UserMapping, "created_at", cfg),
	}
}

// Find lists the caller's own user row. A user owns only itself, so the
// result holds at most one record.
func (u *userRepository) Find(ctx context.Context, id uuid.UUID, opts FindOptions) ([]*db_models.User, error) {
	return u.table.find(ctx, u.table.ownedBy(id), opts)
}

func (u *userRepository) FindOne(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return u.table.findOne(ctx, u.table.ownedBy(id))
}

func (u *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return u.table.findOne(ctx, []fieldmap.Cond{fieldmap.Eq("email", email)})
}

// Create inserts a user. A taken email surfaces as ErrUniqueViolation.
func (u *userRepository) Create(ctx context.Context, fields fieldmap.Patch) (*db_models.User, error) {
	return u.table.create(ctx, uuid.Nil, fields)
}

// Update never upserts: a user row cannot be defaulted into existence.
func (u *userRepository) Update(ctx context.Context, id uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*db_models.User, error) {
	opts.Upsert = false
	return u.table.update(ctx, u.table.ownedBy(id), id, set, opts)
}

func (u *userRepository) Delete(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return u.table.delete(ctx, u.table.ownedBy(id))
}
