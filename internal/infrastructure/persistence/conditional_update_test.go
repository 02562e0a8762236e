package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/propledger/backend/internal/domain/partner"
	"github.com/propledger/backend/internal/domain/shared"
)

// newMockDB hands back a gorm handle whose every statement must be declared
// up front
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// The soft delete must be a single conditional UPDATE guarded by
// deleted_at IS NULL, never a read-modify-write.
func TestLifecycleRepository_SoftDelete_IsConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormLifecycleRepository[partner.Customer](db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "customers" SET .+ WHERE id = \$\d+ AND deleted_at IS NULL`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SoftDelete(context.Background(), id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLifecycleRepository_SoftDelete_ZeroRows_ChecksExistence(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormLifecycleRepository[partner.Customer](db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "customers" SET .+deleted_at IS NULL`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	// The row exists, so the zero-row update means it was already deleted.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE id = \$\d+`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := repo.SoftDelete(context.Background(), id)

	assert.ErrorIs(t, err, shared.ErrAlreadyDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The restore must be guarded by deleted_at IS NOT NULL so a concurrent
// restore cannot double-apply.
func TestLifecycleRepository_Restore_IsConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormLifecycleRepository[partner.Customer](db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "customers" SET .+ WHERE id = \$\d+ AND deleted_at IS NOT NULL`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Restore(context.Background(), id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
