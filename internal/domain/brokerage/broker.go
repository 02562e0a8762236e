package brokerage

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Broker represents a sales broker earning commissions on deals
type Broker struct {
	shared.BaseEntity
	Name           string          `gorm:"type:varchar(200);not null" json:"name"`
	Phone          string          `gorm:"type:varchar(50)" json:"phone"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"commissionRate"`
	Notes          string          `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Broker) TableName() string {
	return "brokers"
}

// NewBroker creates a new live broker
func NewBroker(name, phone string) (*Broker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Broker name cannot be empty")
	}
	return &Broker{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
	}, nil
}

// BrokerDue records an unpaid commission owed to a broker.
// A broker with live dues must not be deleted.
type BrokerDue struct {
	shared.BaseEntity
	BrokerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"brokerId"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount"`
	DueDate  time.Time       `gorm:"not null" json:"dueDate"`
	Notes    string          `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (BrokerDue) TableName() string {
	return "broker_dues"
}

// NewBrokerDue creates a new live broker due
func NewBrokerDue(brokerID uuid.UUID, amount decimal.Decimal, dueDate time.Time) (*BrokerDue, error) {
	if brokerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BROKER", "Broker due requires a broker")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Due amount must be positive")
	}
	return &BrokerDue{
		BaseEntity: shared.NewBaseEntity(),
		BrokerID:   brokerID,
		Amount:     amount,
		DueDate:    dueDate,
	}, nil
}
