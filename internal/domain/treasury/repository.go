package treasury

import (
	"context"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
)

// SafeRepository provides access to the safes collection
type SafeRepository interface {
	shared.LifecycleRepository[Safe]
}

// VoucherRepository provides access to the vouchers collection
type VoucherRepository interface {
	shared.LifecycleRepository[Voucher]
	CountLiveBySafe(ctx context.Context, safeID uuid.UUID) (int64, error)
}

// TransferRepository provides access to the transfers collection
type TransferRepository interface {
	shared.LifecycleRepository[Transfer]
	CountLiveBySource(ctx context.Context, safeID uuid.UUID) (int64, error)
	CountLiveByDestination(ctx context.Context, safeID uuid.UUID) (int64, error)
}
