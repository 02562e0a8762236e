package realty

import (
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the payment state of an installment
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
	InstallmentStatusLate    InstallmentStatus = "late"
)

// Installment represents one scheduled payment against a unit.
// Paid installments block deletion of the unit's contract.
type Installment struct {
	shared.BaseEntity
	UnitID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"unitId"`
	Amount  decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0" json:"amount"`
	DueDate time.Time         `gorm:"not null" json:"dueDate"`
	Status  InstallmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAt  *time.Time        `json:"paidAt"`
	Notes   string            `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Installment) TableName() string {
	return "installments"
}

// NewInstallment creates a new pending installment
func NewInstallment(unitID uuid.UUID, amount decimal.Decimal, dueDate time.Time) (*Installment, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Installment requires a unit")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Installment amount must be positive")
	}
	return &Installment{
		BaseEntity: shared.NewBaseEntity(),
		UnitID:     unitID,
		Amount:     amount,
		DueDate:    dueDate,
		Status:     InstallmentStatusPending,
	}, nil
}

// MarkPaid transitions the installment to the paid state
func (i *Installment) MarkPaid(at time.Time) error {
	if i.Status == InstallmentStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Installment is already paid")
	}
	i.Status = InstallmentStatusPaid
	i.PaidAt = &at
	i.UpdatedAt = time.Now()
	return nil
}
