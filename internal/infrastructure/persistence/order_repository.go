package persistence

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/trade"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindAll returns every order with its customer and products loaded
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]trade.Order, error) {
	var rows []models.OrderModel
	if err := r.preloaded(ctx).Order("order_date ASC").Find(&rows).Error; err != nil {
		return nil, datastoreError("failed to list orders", err)
	}
	return ordersToDomain(rows), nil
}

// FindPlacedBetween returns orders whose order date falls in [from, to]
func (r *GormOrderRepository) FindPlacedBetween(ctx context.Context, from, to time.Time) ([]trade.Order, error) {
	var rows []models.OrderModel
	if err := r.preloaded(ctx).
		Where("order_date >= ? AND order_date <= ?", from, to).
		Order("order_date ASC").
		Find(&rows).Error; err != nil {
		return nil, datastoreError("failed to list recent orders", err)
	}
	return ordersToDomain(rows), nil
}

// Save inserts the order row followed by its product associations
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(models.OrderModelFromDomain(order)).Error; err != nil {
		return datastoreError("failed to save order", err)
	}
	links := models.OrderProductModels(order)
	if len(links) == 0 {
		return nil
	}
	if err := db.Create(&links).Error; err != nil {
		return datastoreError("failed to save order products", err)
	}
	return nil
}

// Count counts all orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Count(&count).Error; err != nil {
		return 0, datastoreError("failed to count orders", err)
	}
	return count, nil
}

// SumTotalAmount returns the sum of all order totals, zero when there are no orders
func (r *GormOrderRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, datastoreError("failed to sum order totals", err)
	}
	return total.Round(2), nil
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Customer").Preload("Products")
}

func ordersToDomain(rows []models.OrderModel) []trade.Order {
	orders := make([]trade.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
