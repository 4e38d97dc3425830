package repositories

import (
	"context"

	"cashback.backend/internal/domain/entities"
)

// OrderRepository defines order data operations. Create performs the
// single atomic insert of a fully-populated order; there are no update or
// delete operations.
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	List(ctx context.Context, skip, limit int) ([]*entities.Order, error)
	ListByReseller(ctx context.Context, cpf string, skip, limit int) ([]*entities.Order, error)
}
