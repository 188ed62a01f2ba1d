package repositories

import (
	"database/sql"
	"database/sql/driver"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"flowstate/internal/fieldmap"
)

var (
	t0 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
	t3 = t0.Add(3 * time.Hour)
)

func newMockDB(t *testing.T) (*gorm.DB, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})
	return db, sqlDB, mock
}

func fixedClock[T any](tb *table[T], now time.Time) {
	tb.now = func() time.Time { return now }
}

// toDriver converts a bind parameter into what the postgres driver would hand
// back for the same column; NUMERIC values come back as text.
func toDriver(t *testing.T, v any) driver.Value {
	t.Helper()
	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		require.NoError(t, err)
		return dv
	}
	if f, ok := v.(float64); ok {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return v
}

// rowsOf renders records as the result set of a SELECT * or RETURNING *.
func rowsOf[T any](t *testing.T, m *fieldmap.Mapping[T], recs ...*T) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows(m.Columns())
	for _, rec := range recs {
		st := m.Values(rec)
		values := make([]driver.Value, len(st.Args))
		for i, a := range st.Args {
			values[i] = toDriver(t, a)
		}
		rows.AddRow(values...)
	}
	return rows
}

func emptyRows[T any](m *fieldmap.Mapping[T]) *sqlmock.Rows {
	return sqlmock.NewRows(m.Columns())
}

// insertArgs returns the bind arguments an insert of rec would carry.
func insertArgs[T any](m *fieldmap.Mapping[T], rec *T) []driver.Value {
	st := m.Encode(rec)
	out := make([]driver.Value, len(st.Args))
	for i, a := range st.Args {
		out[i] = a
	}
	return out
}
