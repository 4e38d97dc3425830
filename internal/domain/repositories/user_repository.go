package repositories

import (
	"context"

	"cashback.backend/internal/domain/entities"
)

// UserRepository defines user data operations. GetByCPF expects the CPF in
// its normalized digits-only form.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByCPF(ctx context.Context, cpf string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	List(ctx context.Context, skip, limit int) ([]*entities.User, error)
}
