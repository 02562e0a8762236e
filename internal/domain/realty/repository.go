package realty

import (
	"context"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
)

// UnitRepository provides access to the units collection
type UnitRepository interface {
	shared.LifecycleRepository[Unit]
}

// ContractRepository provides access to the contracts collection.
// The live-count queries feed the referential guard: a unit or customer with
// live contracts must not be deleted.
type ContractRepository interface {
	shared.LifecycleRepository[Contract]
	CountLiveByUnit(ctx context.Context, unitID uuid.UUID) (int64, error)
	CountLiveByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}

// InstallmentRepository provides access to the installments collection
type InstallmentRepository interface {
	shared.LifecycleRepository[Installment]
	CountLiveByUnit(ctx context.Context, unitID uuid.UUID) (int64, error)
	CountLivePaidByUnit(ctx context.Context, unitID uuid.UUID) (int64, error)
}
