package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Partner represents an investment partner holding shares in units
type Partner struct {
	shared.BaseEntity
	Name    string     `gorm:"type:varchar(200);not null" json:"name"`
	Phone   string     `gorm:"type:varchar(50)" json:"phone"`
	GroupID *uuid.UUID `gorm:"type:uuid;index" json:"groupId"`
	Notes   string     `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// NewPartner creates a new live partner
func NewPartner(name, phone string) (*Partner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	return &Partner{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
	}, nil
}

// AssignGroup places the partner in a partner group
func (p *Partner) AssignGroup(groupID uuid.UUID) {
	p.GroupID = &groupID
	p.UpdatedAt = time.Now()
}

// PartnerGroup bundles partners for reporting purposes
type PartnerGroup struct {
	shared.BaseEntity
	Name  string `gorm:"type:varchar(200);not null" json:"name"`
	Notes string `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (PartnerGroup) TableName() string {
	return "partner_groups"
}

// NewPartnerGroup creates a new live partner group
func NewPartnerGroup(name string) (*PartnerGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner group name cannot be empty")
	}
	return &PartnerGroup{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// UnitPartner links a partner to a unit with an ownership percentage.
// A live link pins both sides: the partner cannot be deleted while it still
// holds a share in any unit.
type UnitPartner struct {
	shared.BaseEntity
	UnitID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"unitId"`
	PartnerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"partnerId"`
	Percentage decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"percentage"`
}

// TableName returns the table name for GORM
func (UnitPartner) TableName() string {
	return "unit_partners"
}

// NewUnitPartner creates a new live unit-partner link
func NewUnitPartner(unitID, partnerID uuid.UUID, percentage decimal.Decimal) (*UnitPartner, error) {
	if unitID == uuid.Nil || partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LINK", "Unit-partner link requires both a unit and a partner")
	}
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_PERCENTAGE", "Ownership percentage must be between 0 and 100")
	}
	return &UnitPartner{
		BaseEntity: shared.NewBaseEntity(),
		UnitID:     unitID,
		PartnerID:  partnerID,
		Percentage: percentage,
	}, nil
}

// PartnerDebt records an outstanding amount owed to or by a partner
type PartnerDebt struct {
	shared.BaseEntity
	PartnerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"partnerId"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount"`
	DueDate   time.Time       `gorm:"not null" json:"dueDate"`
	Notes     string          `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (PartnerDebt) TableName() string {
	return "partner_debts"
}

// NewPartnerDebt creates a new live partner debt
func NewPartnerDebt(partnerID uuid.UUID, amount decimal.Decimal, dueDate time.Time) (*PartnerDebt, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner debt requires a partner")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debt amount must be positive")
	}
	return &PartnerDebt{
		BaseEntity: shared.NewBaseEntity(),
		PartnerID:  partnerID,
		Amount:     amount,
		DueDate:    dueDate,
	}, nil
}
