// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel shared by every table
//   - partner.go: CustomerModel
//   - catalog.go: ProductModel
//   - trade.go: OrderModel and the order/product join table
package models
