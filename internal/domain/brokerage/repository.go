package brokerage

import (
	"context"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
)

// BrokerRepository provides access to the brokers collection
type BrokerRepository interface {
	shared.LifecycleRepository[Broker]
}

// BrokerDueRepository provides access to the broker dues collection
type BrokerDueRepository interface {
	shared.LifecycleRepository[BrokerDue]
	CountLiveByBroker(ctx context.Context, brokerID uuid.UUID) (int64, error)
}
