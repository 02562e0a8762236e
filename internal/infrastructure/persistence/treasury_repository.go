package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propledger/backend/internal/domain/treasury"
)

// GormSafeRepository implements treasury.SafeRepository
type GormSafeRepository struct {
	*GormLifecycleRepository[treasury.Safe]
}

var _ treasury.SafeRepository = (*GormSafeRepository)(nil)

// NewGormSafeRepository creates a safe repository
func NewGormSafeRepository(db *gorm.DB) *GormSafeRepository {
	return &GormSafeRepository{NewGormLifecycleRepository[treasury.Safe](db)}
}

// GormVoucherRepository implements treasury.VoucherRepository
type GormVoucherRepository struct {
	*GormLifecycleRepository[treasury.Voucher]
}

var _ treasury.VoucherRepository = (*GormVoucherRepository)(nil)

// NewGormVoucherRepository creates a voucher repository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{NewGormLifecycleRepository[treasury.Voucher](db)}
}

// CountLiveBySafe returns the number of live vouchers referencing a safe
func (r *GormVoucherRepository) CountLiveBySafe(ctx context.Context, safeID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&treasury.Voucher{}).
		Where("safe_id = ?", safeID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count vouchers by safe: %w", err)
	}
	return count, nil
}

// GormTransferRepository implements treasury.TransferRepository
type GormTransferRepository struct {
	*GormLifecycleRepository[treasury.Transfer]
}

var _ treasury.TransferRepository = (*GormTransferRepository)(nil)

// NewGormTransferRepository creates a transfer repository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{NewGormLifecycleRepository[treasury.Transfer](db)}
}

// CountLiveBySource returns the number of live transfers drawing from a safe
func (r *GormTransferRepository) CountLiveBySource(ctx context.Context, safeID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&treasury.Transfer{}).
		Where("from_safe_id = ?", safeID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count transfers by source safe: %w", err)
	}
	return count, nil
}

// CountLiveByDestination returns the number of live transfers paying into a
// safe
func (r *GormTransferRepository) CountLiveByDestination(ctx context.Context, safeID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&treasury.Transfer{}).
		Where("to_safe_id = ?", safeID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count transfers by destination safe: %w", err)
	}
	return count, nil
}
