package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propledger/backend/internal/domain/realty"
	"github.com/propledger/backend/internal/domain/treasury"
)

func TestContractRepository_CountLive_ExcludesDeleted(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormContractRepository(db)

	unitID := uuid.New()
	customerID := uuid.New()

	first, err := realty.NewContract(unitID, customerID, decimal.NewFromInt(1000), time.Now())
	require.NoError(t, err)
	second, err := realty.NewContract(unitID, customerID, decimal.NewFromInt(2000), time.Now())
	require.NoError(t, err)
	other, err := realty.NewContract(uuid.New(), uuid.New(), decimal.NewFromInt(500), time.Now())
	require.NoError(t, err)

	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)
	require.NoError(t, db.Create(other).Error)

	count, err := repo.CountLiveByUnit(ctx, unitID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountLiveByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.SoftDelete(ctx, first.ID))

	count, err = repo.CountLiveByUnit(ctx, unitID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInstallmentRepository_CountLivePaidByUnit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormInstallmentRepository(db)

	unitID := uuid.New()
	paid, err := realty.NewInstallment(unitID, decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)
	require.NoError(t, paid.MarkPaid(time.Now()))
	pending, err := realty.NewInstallment(unitID, decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)

	require.NoError(t, db.Create(paid).Error)
	require.NoError(t, db.Create(pending).Error)

	count, err := repo.CountLivePaidByUnit(ctx, unitID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountLiveByUnit(ctx, unitID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTransferRepository_CountsBothDirections(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormTransferRepository(db)

	safeID := uuid.New()
	outbound, err := treasury.NewTransfer(safeID, uuid.New(), decimal.NewFromInt(50), time.Now())
	require.NoError(t, err)
	inbound, err := treasury.NewTransfer(uuid.New(), safeID, decimal.NewFromInt(75), time.Now())
	require.NoError(t, err)

	require.NoError(t, db.Create(outbound).Error)
	require.NoError(t, db.Create(inbound).Error)

	sources, err := repo.CountLiveBySource(ctx, safeID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sources)

	destinations, err := repo.CountLiveByDestination(ctx, safeID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), destinations)
}

func TestSettingRepository_SetIsUpsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormSettingRepository(db)

	require.NoError(t, repo.Set(ctx, "theme", "light"))
	require.NoError(t, repo.Set(ctx, "theme", "dark"))

	value, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSettingRepository_FindAll_EmptyIsNotNil(t *testing.T) {
	repo := NewGormSettingRepository(newTestDB(t))

	rows, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
