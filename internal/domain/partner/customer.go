package partner

import (
	"strings"
	"time"

	"github.com/propledger/backend/internal/domain/shared"
)

// Customer represents a buyer or tenant holding contracts on units
type Customer struct {
	shared.BaseEntity
	Name       string `gorm:"type:varchar(200);not null" json:"name"`
	Phone      string `gorm:"type:varchar(50);index" json:"phone"`
	Email      string `gorm:"type:varchar(200)" json:"email"`
	NationalID string `gorm:"type:varchar(50)" json:"nationalId"`
	Address    string `gorm:"type:text" json:"address"`
	Notes      string `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new live customer
func NewCustomer(name, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
	}, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, phone, email, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.Email = strings.ToLower(email)
	c.Address = address
	c.UpdatedAt = time.Now()
	return nil
}
