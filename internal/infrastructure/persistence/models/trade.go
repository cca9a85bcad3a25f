package models

import (
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity.
// Customer and Products are only populated by preloading reads.
type OrderModel struct {
	BaseModel
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Customer    *CustomerModel  `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Products    []ProductModel  `gorm:"many2many:crm_order_products;joinForeignKey:OrderID;joinReferences:ProductID"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OrderDate   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "crm_orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		BaseEntity:  m.BaseModel.ToDomain(),
		CustomerID:  m.CustomerID,
		TotalAmount: m.TotalAmount,
		OrderDate:   m.OrderDate,
		Products:    make([]catalog.Product, len(m.Products)),
	}
	if m.Customer != nil {
		order.Customer = m.Customer.ToDomain()
	}
	for i := range m.Products {
		order.Products[i] = *m.Products[i].ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order entity.
// Associations are left empty; the join rows are written separately.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.CustomerID = o.CustomerID
	m.TotalAmount = o.TotalAmount
	m.OrderDate = o.OrderDate
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderProductModel is a row of the order/product join table
type OrderProductModel struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name for GORM
func (OrderProductModel) TableName() string {
	return "crm_order_products"
}

// OrderProductModels builds the join rows of an order
func OrderProductModels(o *trade.Order) []OrderProductModel {
	rows := make([]OrderProductModel, len(o.Products))
	for i := range o.Products {
		rows[i] = OrderProductModel{OrderID: o.ID, ProductID: o.Products[i].ID}
	}
	return rows
}
