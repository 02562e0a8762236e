package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
)

// CustomerRepository provides access to the customers collection
type CustomerRepository interface {
	shared.LifecycleRepository[Customer]
}

// PartnerRepository provides access to the partners collection
type PartnerRepository interface {
	shared.LifecycleRepository[Partner]
}

// PartnerGroupRepository provides access to the partner groups collection
type PartnerGroupRepository interface {
	shared.LifecycleRepository[PartnerGroup]
}

// UnitPartnerRepository provides access to the unit-partner links collection
type UnitPartnerRepository interface {
	shared.LifecycleRepository[UnitPartner]
	CountLiveByPartner(ctx context.Context, partnerID uuid.UUID) (int64, error)
	CountLiveByUnit(ctx context.Context, unitID uuid.UUID) (int64, error)
}

// PartnerDebtRepository provides access to the partner debts collection
type PartnerDebtRepository interface {
	shared.LifecycleRepository[PartnerDebt]
	CountLiveByPartner(ctx context.Context, partnerID uuid.UUID) (int64, error)
}
