package realty

import (
	"strings"
	"time"

	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnitType classifies a property unit
type UnitType string

const (
	UnitTypeApartment UnitType = "apartment"
	UnitTypeShop      UnitType = "shop"
	UnitTypeLand      UnitType = "land"
	UnitTypeOffice    UnitType = "office"
)

// Unit represents a single property unit. Units are root entities: contracts,
// installments and partner shares all hang off them.
type Unit struct {
	shared.BaseEntity
	Name    string          `gorm:"type:varchar(200);not null" json:"name"`
	Type    UnitType        `gorm:"type:varchar(20);not null;default:'apartment'" json:"type"`
	Area    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"area"`
	Price   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"price"`
	Address string          `gorm:"type:text" json:"address"`
	Notes   string          `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Unit) TableName() string {
	return "units"
}

// NewUnit creates a new live unit
func NewUnit(name string, unitType UnitType, price decimal.Decimal) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Unit name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return &Unit{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       unitType,
		Area:       decimal.Zero,
		Price:      price,
	}, nil
}

// Update updates the unit's basic information
func (u *Unit) Update(name, address, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Unit name cannot be empty")
	}
	u.Name = name
	u.Address = address
	u.Notes = notes
	u.UpdatedAt = time.Now()
	return nil
}
