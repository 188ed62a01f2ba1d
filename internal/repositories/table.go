package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowstate/internal/fieldmap"
	"flowstate/internal/logging"
	"flowstate/internal/metrics"
)

// Config tunes how repositories use the shared pool.
type Config struct {
	// AcquireTimeout bounds the wait for a pooled connection. Zero waits for
	// as long as the caller's context allows.
	AcquireTimeout time.Duration
}

// FindOptions narrows a Find. Both time bounds are inclusive and apply to the
// entity's temporal column. Limit and Skip are applied after the full owner
// result set is read.
type FindOptions struct {
	From      *time.Time
	To        *time.Time
	SessionID *uuid.UUID
	Limit     int
	Skip      int
}

type UpdateOptions struct {
	// Upsert creates a default record when the target does not exist. The
	// created row carries defaults and the owner only, never the update
	// payload, so it is honored solely by owner-keyed entities. Id-keyed
	// repositories ignore it, since a defaulted row would get a fresh id.
	Upsert bool
}

// table implements the shared CRUD operations for one mapped entity. Every
// operation runs on exactly one pooled connection that is returned on every
// exit path.
type table[T any] struct {
	db       *gorm.DB
	mapping  *fieldmap.Mapping[T]
	temporal string
	cfg      Config
	now      func() time.Time
}

func newTable[T any](db *gorm.DB, m *fieldmap.Mapping[T], temporal string, cfg Config) *table[T] {
	return &table[T]{
		db:       db,
		mapping:  m,
		temporal: temporal,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// withConn acquires a dedicated connection, binds it to a gorm session and
// runs fn on it.
func (t *table[T]) withConn(ctx context.Context, op string, fn func(tx *gorm.DB) error) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(op, t.mapping.Table(), time.Since(start), err)
	}()

	sqlDB, err := t.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPoolUnavailable, err)
	}
	defer func() { metrics.RecordPoolStats(sqlDB.Stats()) }()

	acquireCtx, cancel := ctx, context.CancelFunc(func() {})
	if t.cfg.AcquireTimeout > 0 {
		acquireCtx, cancel = context.WithTimeout(ctx, t.cfg.AcquireTimeout)
	}
	conn, err := sqlDB.Conn(acquireCtx)
	cancel()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		metrics.DBPoolAcquireFailures.Inc()
		return fmt.Errorf("%w: %w", ErrPoolUnavailable, err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			logging.Ctx(ctx).Warn().Err(cerr).Str("table", t.mapping.Table()).Msg("release connection")
		}
	}()

	tx := t.db.WithContext(ctx)
	tx.Statement.ConnPool = conn
	return translateError(fn(tx))
}

// query runs a statement that returns rows and collects them keyed by column.
func query(tx *gorm.DB, sql string, args ...any) ([]fieldmap.Row, error) {
	rows, err := tx.Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []fieldmap.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(fieldmap.Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (t *table[T]) selectSQL(conds []fieldmap.Cond, ordered bool) (string, []any) {
	where, args := fieldmap.Where(conds, 0)
	q := fmt.Sprintf("SELECT * FROM %s WHERE %s", t.mapping.Table(), where)
	if ordered {
		q += fmt.Sprintf(" ORDER BY %s DESC", t.temporal)
	}
	return q, args
}

func (t *table[T]) decodeAll(rows []fieldmap.Row) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		rec, err := t.mapping.Decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (t *table[T]) first(rows []fieldmap.Row) (*T, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	return t.mapping.Decode(rows[0])
}

func (t *table[T]) find(ctx context.Context, scope []fieldmap.Cond, opts FindOptions) ([]*T, error) {
	conds := append([]fieldmap.Cond{}, scope...)
	if opts.SessionID != nil {
		conds = append(conds, fieldmap.Eq("session_id", *opts.SessionID))
	}
	if opts.From != nil {
		conds = append(conds, fieldmap.Gte(t.temporal, *opts.From))
	}
	if opts.To != nil {
		conds = append(conds, fieldmap.Lte(t.temporal, *opts.To))
	}
	q, args := t.selectSQL(conds, true)

	var records []*T
	err := t.withConn(ctx, "find", func(tx *gorm.DB) error {
		rows, err := query(tx, q, args...)
		if err != nil {
			return err
		}
		records, err = t.decodeAll(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return page(records, opts.Skip, opts.Limit), nil
}

func page[T any](records []*T, skip, limit int) []*T {
	if skip > 0 {
		if skip >= len(records) {
			return []*T{}
		}
		records = records[skip:]
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

func (t *table[T]) findOne(ctx context.Context, scope []fieldmap.Cond) (*T, error) {
	q, args := t.selectSQL(scope, false)
	var rec *T
	err := t.withConn(ctx, "find_one", func(tx *gorm.DB) error {
		rows, err := query(tx, q, args...)
		if err != nil {
			return err
		}
		rec, err = t.first(rows)
		return err
	})
	return rec, err
}

// build defaults a record, applies the caller's fields and stamps the owner
// last so the payload cannot reassign it.
func (t *table[T]) build(owner uuid.UUID, fields fieldmap.Patch) (*fieldmap.Statement, error) {
	now := t.now()
	rec := t.mapping.Defaults(now)
	if err := t.mapping.Apply(rec, fields, now); err != nil {
		return nil, err
	}
	if owner != uuid.Nil && t.mapping.Owner() != t.mapping.Key() {
		if err := t.mapping.SetColumn(rec, t.mapping.Owner(), owner); err != nil {
			return nil, err
		}
	}
	return t.mapping.Encode(rec), nil
}

func (t *table[T]) insert(tx *gorm.DB, st *fieldmap.Statement) (*T, error) {
	q, args := st.InsertSQL()
	rows, err := query(tx, q, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s returned no row", t.mapping.Table())
	}
	return t.mapping.Decode(rows[0])
}

func (t *table[T]) create(ctx context.Context, owner uuid.UUID, fields fieldmap.Patch) (*T, error) {
	st, err := t.build(owner, fields)
	if err != nil {
		return nil, err
	}
	var rec *T
	err = t.withConn(ctx, "create", func(tx *gorm.DB) error {
		rec, err = t.insert(tx, st)
		return err
	})
	return rec, err
}

func (t *table[T]) update(ctx context.Context, scope []fieldmap.Cond, owner uuid.UUID, set fieldmap.Patch, opts UpdateOptions) (*T, error) {
	st, err := t.mapping.BuildUpdate(set, t.now())
	if err != nil {
		return nil, err
	}

	var rec *T
	err = t.withConn(ctx, "update", func(tx *gorm.DB) error {
		if opts.Upsert || st == nil {
			q, args := t.selectSQL(scope, false)
			rows, err := query(tx, q, args...)
			if err != nil {
				return err
			}
			if len(rows) == 0 && opts.Upsert {
				if st != nil {
					// The created row carries defaults only; the patch is not applied.
					logging.Ctx(ctx).Warn().
						Str("table", t.mapping.Table()).
						Str("patch", set.String()).
						Msg("upsert on absent record created defaults and discarded the update payload")
				}
				created, err := t.build(owner, nil)
				if err != nil {
					return err
				}
				rec, err = t.insert(tx, created)
				return err
			}
			if st == nil {
				rec, err = t.first(rows)
				return err
			}
		}

		q, args := st.SQL(scope...)
		rows, err := query(tx, q, args...)
		if err != nil {
			return err
		}
		rec, err = t.first(rows)
		return err
	})
	return rec, err
}

func (t *table[T]) delete(ctx context.Context, scope []fieldmap.Cond) (*T, error) {
	where, args := fieldmap.Where(scope, 0)
	q := fmt.Sprintf("DELETE FROM %s WHERE %s RETURNING *", t.mapping.Table(), where)

	var rec *T
	err := t.withConn(ctx, "delete", func(tx *gorm.DB) error {
		rows, err := query(tx, q, args...)
		if err != nil {
			return err
		}
		rec, err = t.first(rows)
		return err
	})
	return rec, err
}

// owned scopes a statement to one record of one owner.
func (t *table[T]) owned(id, owner uuid.UUID) []fieldmap.Cond {
	return []fieldmap.Cond{
		fieldmap.Eq(t.mapping.Key(), id),
		fieldmap.Eq(t.mapping.Owner(), owner),
	}
}

func (t *table[T]) ownedBy(owner uuid.UUID) []fieldmap.Cond {
	return []fieldmap.Cond{fieldmap.Eq(t.mapping.Owner(), owner)}
}
