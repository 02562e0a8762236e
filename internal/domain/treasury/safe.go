package treasury

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Safe represents a cash box or bank account. Its balance is maintained by
// voucher and transfer activity elsewhere; the lifecycle subsystem only reads
// it. A safe with a non-zero balance or live money movements must not be
// deleted.
type Safe struct {
	shared.BaseEntity
	Name    string          `gorm:"type:varchar(200);not null" json:"name"`
	Balance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"balance"`
	Notes   string          `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Safe) TableName() string {
	return "safes"
}

// NewSafe creates a new live safe with a zero balance
func NewSafe(name string) (*Safe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Safe name cannot be empty")
	}
	return &Safe{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Balance:    decimal.Zero,
	}, nil
}

// VoucherType distinguishes money in from money out
type VoucherType string

const (
	VoucherTypeReceipt VoucherType = "receipt"
	VoucherTypePayment VoucherType = "payment"
)

// Voucher records a single cash movement through a safe
type Voucher struct {
	shared.BaseEntity
	SafeID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"safeId"`
	Type        VoucherType     `gorm:"type:varchar(20);not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Description string          `gorm:"type:text" json:"description"`
}

// TableName returns the table name for GORM
func (Voucher) TableName() string {
	return "vouchers"
}

// NewVoucher creates a new live voucher
func NewVoucher(safeID uuid.UUID, voucherType VoucherType, amount decimal.Decimal, date time.Time) (*Voucher, error) {
	if safeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SAFE", "Voucher requires a safe")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Voucher amount must be positive")
	}
	return &Voucher{
		BaseEntity: shared.NewBaseEntity(),
		SafeID:     safeID,
		Type:       voucherType,
		Amount:     amount,
		Date:       date,
	}, nil
}

// Transfer records a movement of funds between two safes
type Transfer struct {
	shared.BaseEntity
	FromSafeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"fromSafeId"`
	ToSafeID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"toSafeId"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount"`
	Date       time.Time       `gorm:"not null" json:"date"`
	Notes      string          `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Transfer) TableName() string {
	return "transfers"
}

// NewTransfer creates a new live transfer between two distinct safes
func NewTransfer(fromSafeID, toSafeID uuid.UUID, amount decimal.Decimal, date time.Time) (*Transfer, error) {
	if fromSafeID == uuid.Nil || toSafeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SAFE", "Transfer requires both a source and a destination safe")
	}
	if fromSafeID == toSafeID {
		return nil, shared.NewDomainError("INVALID_SAFE", "Transfer source and destination must differ")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transfer amount must be positive")
	}
	return &Transfer{
		BaseEntity: shared.NewBaseEntity(),
		FromSafeID: fromSafeID,
		ToSafeID:   toSafeID,
		Amount:     amount,
		Date:       date,
	}, nil
}
