package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/propledger/backend/internal/domain/realty"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/domain/treasury"
)

func TestGuard_CanDelete_UnknownType_Allows(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	// No rule is registered for installments; the guard allows by default.
	verdict := guard.CanDelete(context.Background(), shared.EntityInstallment, uuid.New())

	assert.True(t, verdict.Allowed)
	assert.Empty(t, verdict.Reason)
}

func TestGuard_CanDelete_Customer_NoContracts(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	gm.contracts.On("CountLiveByCustomer", ctx, id).Return(int64(0), nil)

	verdict := guard.CanDelete(ctx, shared.EntityCustomer, id)

	assert.True(t, verdict.Allowed)
	gm.contracts.AssertExpectations(t)
}

func TestGuard_CanDelete_Customer_WithContracts_Denies(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	gm.contracts.On("CountLiveByCustomer", ctx, id).Return(int64(3), nil)

	verdict := guard.CanDelete(ctx, shared.EntityCustomer, id)

	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "3 active contract(s)")
	gm.contracts.AssertExpectations(t)
}

func TestGuard_CanDelete_Unit_WithContracts_Denies(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	gm.contracts.On("CountLiveByUnit", ctx, id).Return(int64(1), nil)

	verdict := guard.CanDelete(ctx, shared.EntityUnit, id)

	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "active contract")
	gm.contracts.AssertExpectations(t)
}

func TestGuard_CanDelete_Contract_WithPaidInstallments_Denies(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	unitID := uuid.New()
	contract := &realty.Contract{UnitID: unitID}
	contract.ID = uuid.New()

	gm.contracts.On("FindByID", ctx, contract.ID).Return(contract, nil)
	gm.installments.On("CountLivePaidByUnit", ctx, unitID).Return(int64(2), nil)

	verdict := guard.CanDelete(ctx, shared.EntityContract, contract.ID)

	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "paid installment")
	gm.contracts.AssertExpectations(t)
	gm.installments.AssertExpectations(t)
}

func TestGuard_CanDelete_Contract_Missing_Allows(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	gm.contracts.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	verdict := guard.CanDelete(ctx, shared.EntityContract, id)

	assert.True(t, verdict.Allowed)
	gm.contracts.AssertExpectations(t)
}

func TestGuard_CanDelete_Safe_NonZeroBalance_Denies(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	safe := &treasury.Safe{Balance: decimal.NewFromInt(150)}
	safe.ID = uuid.New()
	gm.safes.On("FindByID", ctx, safe.ID).Return(safe, nil)

	verdict := guard.CanDelete(ctx, shared.EntitySafe, safe.ID)

	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "balance")
	gm.safes.AssertExpectations(t)
	gm.vouchers.AssertNotCalled(t, "CountLiveBySafe")
}

func TestGuard_CanDelete_Safe_WithTransfers_Denies(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	safe := &treasury.Safe{Balance: decimal.Zero}
	safe.ID = uuid.New()
	gm.safes.On("FindByID", ctx, safe.ID).Return(safe, nil)
	gm.vouchers.On("CountLiveBySafe", ctx, safe.ID).Return(int64(0), nil)
	gm.transfers.On("CountLiveBySource", ctx, safe.ID).Return(int64(1), nil)
	gm.transfers.On("CountLiveByDestination", ctx, safe.ID).Return(int64(2), nil)

	verdict := guard.CanDelete(ctx, shared.EntitySafe, safe.ID)

	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "3 active transfer(s)")
	gm.transfers.AssertExpectations(t)
}

func TestGuard_CanDelete_Safe_Clean_Allows(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	safe := &treasury.Safe{Balance: decimal.Zero}
	safe.ID = uuid.New()
	gm.safes.On("FindByID", ctx, safe.ID).Return(safe, nil)
	gm.vouchers.On("CountLiveBySafe", ctx, safe.ID).Return(int64(0), nil)
	gm.transfers.On("CountLiveBySource", ctx, safe.ID).Return(int64(0), nil)
	gm.transfers.On("CountLiveByDestination", ctx, safe.ID).Return(int64(0), nil)

	verdict := guard.CanDelete(ctx, shared.EntitySafe, safe.ID)

	assert.True(t, verdict.Allowed)
}

func TestGuard_CanDelete_Partner_WithShares_Denies(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	gm.unitPartners.On("CountLiveByPartner", ctx, id).Return(int64(4), nil)

	verdict := guard.CanDelete(ctx, shared.EntityPartner, id)

	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "shares in 4 unit(s)")
	gm.partnerDebts.AssertNotCalled(t, "CountLiveByPartner")
}

func TestGuard_CanDelete_Partner_WithDebts_Denies(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	gm.unitPartners.On("CountLiveByPartner", ctx, id).Return(int64(0), nil)
	gm.partnerDebts.On("CountLiveByPartner", ctx, id).Return(int64(2), nil)

	verdict := guard.CanDelete(ctx, shared.EntityPartner, id)

	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "outstanding debt")
}

func TestGuard_CanDelete_Broker_WithDues_Denies(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	gm.brokerDues.On("CountLiveByBroker", ctx, id).Return(int64(1), nil)

	verdict := guard.CanDelete(ctx, shared.EntityBroker, id)

	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "unpaid due")
}

func TestGuard_CanDelete_RepositoryError_FailsClosed(t *testing.T) {
	gm := newGuardMocks()
	guard := NewGuard(gm.repos(), zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	gm.contracts.On("CountLiveByCustomer", ctx, id).Return(int64(0), errors.New("connection reset"))

	verdict := guard.CanDelete(ctx, shared.EntityCustomer, id)

	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "Could not verify dependent records")
}
