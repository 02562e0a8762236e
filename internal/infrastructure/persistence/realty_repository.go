package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propledger/backend/internal/domain/realty"
)

// GormUnitRepository implements realty.UnitRepository
type GormUnitRepository struct {
	*GormLifecycleRepository[realty.Unit]
}

var _ realty.UnitRepository = (*GormUnitRepository)(nil)

// NewGormUnitRepository creates a unit repository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{NewGormLifecycleRepository[realty.Unit](db)}
}

// GormContractRepository implements realty.ContractRepository
type GormContractRepository struct {
	*GormLifecycleRepository[realty.Contract]
}

var _ realty.ContractRepository = (*GormContractRepository)(nil)

// NewGormContractRepository creates a contract repository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{NewGormLifecycleRepository[realty.Contract](db)}
}

// CountLiveByUnit returns the number of live contracts referencing a unit
func (r *GormContractRepository) CountLiveByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&realty.Contract{}).
		Where("unit_id = ?", unitID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count contracts by unit: %w", err)
	}
	return count, nil
}

// CountLiveByCustomer returns the number of live contracts referencing a
// customer
func (r *GormContractRepository) CountLiveByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&realty.Contract{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count contracts by customer: %w", err)
	}
	return count, nil
}

// GormInstallmentRepository implements realty.InstallmentRepository
type GormInstallmentRepository struct {
	*GormLifecycleRepository[realty.Installment]
}

var _ realty.InstallmentRepository = (*GormInstallmentRepository)(nil)

// NewGormInstallmentRepository creates an installment repository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{NewGormLifecycleRepository[realty.Installment](db)}
}

// CountLiveByUnit returns the number of live installments referencing a unit
func (r *GormInstallmentRepository) CountLiveByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&realty.Installment{}).
		Where("unit_id = ?", unitID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count installments by unit: %w", err)
	}
	return count, nil
}

// CountLivePaidByUnit returns the number of live paid installments referencing
// a unit
func (r *GormInstallmentRepository) CountLivePaidByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&realty.Installment{}).
		Where("unit_id = ? AND status = ?", unitID, realty.InstallmentStatusPaid).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count paid installments by unit: %w", err)
	}
	return count, nil
}
