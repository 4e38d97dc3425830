package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cashback.backend/internal/domain/cashback"
	"cashback.backend/internal/domain/entities"
	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/infrastructure/models"
)

// OrderRepository implements order data operations
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a fully-populated order in a single write. Any constraint
// or connectivity failure leaves no row behind.
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	m := &models.Order{
		Code:               order.Code,
		Value:              order.Value,
		CashbackPercentage: order.CashbackPercentage,
		CashbackValue:      order.CashbackValue,
		Status:             string(order.Status),
		Date:               order.Date,
		ResellerCPF:        order.ResellerCPF,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}

	order.ID = m.ID
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

// List lists orders ordered by id
func (r *OrderRepository) List(ctx context.Context, skip, limit int) ([]*entities.Order, error) {
	var orderModels []models.Order
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&orderModels).Error
	if err != nil {
		return nil, err
	}
	return ordersToEntities(orderModels), nil
}

// ListByReseller lists orders belonging to a normalized reseller CPF
func (r *OrderRepository) ListByReseller(ctx context.Context, cpf string, skip, limit int) ([]*entities.Order, error) {
	var orderModels []models.Order
	err := r.db.WithContext(ctx).
		Where("reseller_cpf = ?", cpf).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&orderModels).Error
	if err != nil {
		return nil, err
	}
	return ordersToEntities(orderModels), nil
}

func ordersToEntities(orderModels []models.Order) []*entities.Order {
	orders := make([]*entities.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, orderToEntity(&orderModels[i]))
	}
	return orders
}

func orderToEntity(m *models.Order) *entities.Order {
	return &entities.Order{
		ID:                 m.ID,
		Code:               m.Code,
		Value:              m.Value,
		CashbackPercentage: m.CashbackPercentage,
		CashbackValue:      m.CashbackValue,
		Status:             cashback.Status(m.Status),
		Date:               m.Date,
		ResellerCPF:        m.ResellerCPF,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
