package realty

import (
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Contract represents a sale or rental contract binding a customer to a unit.
// A live contract pins both its unit and its customer: neither may be
// soft-deleted while the contract itself is live.
type Contract struct {
	shared.BaseEntity
	UnitID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"unitId"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"customerId"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"totalAmount"`
	StartDate   time.Time       `gorm:"not null" json:"startDate"`
	Notes       string          `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Contract) TableName() string {
	return "contracts"
}

// NewContract creates a new live contract
func NewContract(unitID, customerID uuid.UUID, totalAmount decimal.Decimal, startDate time.Time) (*Contract, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Contract requires a unit")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Contract requires a customer")
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Contract amount cannot be negative")
	}
	return &Contract{
		BaseEntity:  shared.NewBaseEntity(),
		UnitID:      unitID,
		CustomerID:  customerID,
		TotalAmount: totalAmount,
		StartDate:   startDate,
	}, nil
}
