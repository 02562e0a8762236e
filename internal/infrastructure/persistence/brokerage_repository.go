package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propledger/backend/internal/domain/brokerage"
)

// GormBrokerRepository implements brokerage.BrokerRepository
type GormBrokerRepository struct {
	*GormLifecycleRepository[brokerage.Broker]
}

var _ brokerage.BrokerRepository = (*GormBrokerRepository)(nil)

// NewGormBrokerRepository creates a broker repository
func NewGormBrokerRepository(db *gorm.DB) *GormBrokerRepository {
	return &GormBrokerRepository{NewGormLifecycleRepository[brokerage.Broker](db)}
}

// GormBrokerDueRepository implements brokerage.BrokerDueRepository
type GormBrokerDueRepository struct {
	*GormLifecycleRepository[brokerage.BrokerDue]
}

var _ brokerage.BrokerDueRepository = (*GormBrokerDueRepository)(nil)

// NewGormBrokerDueRepository creates a broker due repository
func NewGormBrokerDueRepository(db *gorm.DB) *GormBrokerDueRepository {
	return &GormBrokerDueRepository{NewGormLifecycleRepository[brokerage.BrokerDue](db)}
}

// CountLiveByBroker returns the number of live dues referencing a broker
func (r *GormBrokerDueRepository) CountLiveByBroker(ctx context.Context, brokerID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&brokerage.BrokerDue{}).
		Where("broker_id = ?", brokerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count dues by broker: %w", err)
	}
	return count, nil
}
