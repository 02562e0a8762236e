package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propledger/backend/internal/domain/partner"
)

// GormCustomerRepository implements partner.CustomerRepository
type GormCustomerRepository struct {
	*GormLifecycleRepository[partner.Customer]
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)

// NewGormCustomerRepository creates a customer repository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{NewGormLifecycleRepository[partner.Customer](db)}
}

// GormPartnerRepository implements partner.PartnerRepository
type GormPartnerRepository struct {
	*GormLifecycleRepository[partner.Partner]
}

var _ partner.PartnerRepository = (*GormPartnerRepository)(nil)

// NewGormPartnerRepository creates a partner repository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{NewGormLifecycleRepository[partner.Partner](db)}
}

// GormPartnerGroupRepository implements partner.PartnerGroupRepository
type GormPartnerGroupRepository struct {
	*GormLifecycleRepository[partner.PartnerGroup]
}

var _ partner.PartnerGroupRepository = (*GormPartnerGroupRepository)(nil)

// NewGormPartnerGroupRepository creates a partner group repository
func NewGormPartnerGroupRepository(db *gorm.DB) *GormPartnerGroupRepository {
	return &GormPartnerGroupRepository{NewGormLifecycleRepository[partner.PartnerGroup](db)}
}

// GormUnitPartnerRepository implements partner.UnitPartnerRepository
type GormUnitPartnerRepository struct {
	*GormLifecycleRepository[partner.UnitPartner]
}

var _ partner.UnitPartnerRepository = (*GormUnitPartnerRepository)(nil)

// NewGormUnitPartnerRepository creates a unit-partner link repository
func NewGormUnitPartnerRepository(db *gorm.DB) *GormUnitPartnerRepository {
	return &GormUnitPartnerRepository{NewGormLifecycleRepository[partner.UnitPartner](db)}
}

// CountLiveByPartner returns the number of live ownership links referencing a
// partner
func (r *GormUnitPartnerRepository) CountLiveByPartner(ctx context.Context, partnerID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&partner.UnitPartner{}).
		Where("partner_id = ?", partnerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unit partners by partner: %w", err)
	}
	return count, nil
}

// CountLiveByUnit returns the number of live ownership links referencing a
// unit
func (r *GormUnitPartnerRepository) CountLiveByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&partner.UnitPartner{}).
		Where("unit_id = ?", unitID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unit partners by unit: %w", err)
	}
	return count, nil
}

// GormPartnerDebtRepository implements partner.PartnerDebtRepository
type GormPartnerDebtRepository struct {
	*GormLifecycleRepository[partner.PartnerDebt]
}

var _ partner.PartnerDebtRepository = (*GormPartnerDebtRepository)(nil)

// NewGormPartnerDebtRepository creates a partner debt repository
func NewGormPartnerDebtRepository(db *gorm.DB) *GormPartnerDebtRepository {
	return &GormPartnerDebtRepository{NewGormLifecycleRepository[partner.PartnerDebt](db)}
}

// CountLiveByPartner returns the number of live debts referencing a partner
func (r *GormPartnerDebtRepository) CountLiveByPartner(ctx context.Context, partnerID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&partner.PartnerDebt{}).
		Where("partner_id = ?", partnerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count partner debts by partner: %w", err)
	}
	return count, nil
}
