package lifecycle

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/propledger/backend/internal/domain/brokerage"
	"github.com/propledger/backend/internal/domain/partner"
	"github.com/propledger/backend/internal/domain/realty"
	"github.com/propledger/backend/internal/domain/treasury"
)

// mockLifecycleRepo is the shared mock base for every per-collection
// repository mock
type mockLifecycleRepo[T any] struct {
	mock.Mock
}

func (m *mockLifecycleRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockLifecycleRepo[T]) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockLifecycleRepo[T]) FindAllLive(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *mockLifecycleRepo[T]) FindDeleted(ctx context.Context, page, pageSize int) ([]T, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]T), args.Get(1).(int64), args.Error(2)
}

func (m *mockLifecycleRepo[T]) CountLive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLifecycleRepo[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockLifecycleRepo[T]) Restore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockLifecycleRepo[T]) InsertBatch(ctx context.Context, rows []T) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

type mockSafeRepo struct {
	mockLifecycleRepo[treasury.Safe]
}

type mockVoucherRepo struct {
	mockLifecycleRepo[treasury.Voucher]
}

func (m *mockVoucherRepo) CountLiveBySafe(ctx context.Context, safeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, safeID)
	return args.Get(0).(int64), args.Error(1)
}

type mockTransferRepo struct {
	mockLifecycleRepo[treasury.Transfer]
}

func (m *mockTransferRepo) CountLiveBySource(ctx context.Context, safeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, safeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransferRepo) CountLiveByDestination(ctx context.Context, safeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, safeID)
	return args.Get(0).(int64), args.Error(1)
}

type mockContractRepo struct {
	mockLifecycleRepo[realty.Contract]
}

func (m *mockContractRepo) CountLiveByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	args := m.Called(ctx, unitID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContractRepo) CountLiveByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

type mockInstallmentRepo struct {
	mockLifecycleRepo[realty.Installment]
}

func (m *mockInstallmentRepo) CountLiveByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	args := m.Called(ctx, unitID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInstallmentRepo) CountLivePaidByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	args := m.Called(ctx, unitID)
	return args.Get(0).(int64), args.Error(1)
}

type mockUnitPartnerRepo struct {
	mockLifecycleRepo[partner.UnitPartner]
}

func (m *mockUnitPartnerRepo) CountLiveByPartner(ctx context.Context, partnerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUnitPartnerRepo) CountLiveByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	args := m.Called(ctx, unitID)
	return args.Get(0).(int64), args.Error(1)
}

type mockPartnerDebtRepo struct {
	mockLifecycleRepo[partner.PartnerDebt]
}

func (m *mockPartnerDebtRepo) CountLiveByPartner(ctx context.Context, partnerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).(int64), args.Error(1)
}

type mockBrokerDueRepo struct {
	mockLifecycleRepo[brokerage.BrokerDue]
}

func (m *mockBrokerDueRepo) CountLiveByBroker(ctx context.Context, brokerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, brokerID)
	return args.Get(0).(int64), args.Error(1)
}

// mockCollectionStore mocks the registry's type-erased store
type mockCollectionStore struct {
	mock.Mock
}

func (m *mockCollectionStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCollectionStore) Restore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCollectionStore) ListDeleted(ctx context.Context, page, pageSize int) ([]any, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]any), args.Get(1).(int64), args.Error(2)
}

func (m *mockCollectionStore) CountLive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// guardMocks bundles fresh mocks plus the repo view the guard needs
type guardMocks struct {
	safes        *mockSafeRepo
	vouchers     *mockVoucherRepo
	transfers    *mockTransferRepo
	contracts    *mockContractRepo
	installments *mockInstallmentRepo
	unitPartners *mockUnitPartnerRepo
	partnerDebts *mockPartnerDebtRepo
	brokerDues   *mockBrokerDueRepo
}

func newGuardMocks() *guardMocks {
	return &guardMocks{
		safes:        new(mockSafeRepo),
		vouchers:     new(mockVoucherRepo),
		transfers:    new(mockTransferRepo),
		contracts:    new(mockContractRepo),
		installments: new(mockInstallmentRepo),
		unitPartners: new(mockUnitPartnerRepo),
		partnerDebts: new(mockPartnerDebtRepo),
		brokerDues:   new(mockBrokerDueRepo),
	}
}

func (gm *guardMocks) repos() GuardRepositories {
	return GuardRepositories{
		Safes:        gm.safes,
		Vouchers:     gm.vouchers,
		Transfers:    gm.transfers,
		Contracts:    gm.contracts,
		Installments: gm.installments,
		UnitPartners: gm.unitPartners,
		PartnerDebts: gm.partnerDebts,
		BrokerDues:   gm.brokerDues,
	}
}
