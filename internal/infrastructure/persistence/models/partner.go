package models

import (
	"github.com/crm/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
// The unique index on email is the authoritative uniqueness guard.
type CustomerModel struct {
	BaseModel
	Name  string  `gorm:"type:varchar(255);not null"`
	Email string  `gorm:"type:varchar(254);not null;uniqueIndex:idx_crm_customers_email"`
	Phone *string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "crm_customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
