package usecases

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"

	"cashback.backend/internal/domain/cashback"
	"cashback.backend/internal/domain/entities"
	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/domain/repositories"
	"cashback.backend/pkg/crypto"
)

// UserUsecase handles user management business logic
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// CreateUser registers a reseller. The CPF is normalized before the
// uniqueness checks and the insert so lookups always agree on one form.
func (u *UserUsecase) CreateUser(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	normalized := cashback.NormalizeCPF(input.CPF)
	if normalized == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	if _, err := u.userRepo.GetByCPF(ctx, normalized); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        input.Email,
		PasswordHash: passwordHash,
		FullName:     input.FullName,
		CPF:          null.StringFrom(normalized),
		IsActive:     true,
		IsSuperuser:  false,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsSuperuser != nil {
		user.IsSuperuser = *input.IsSuperuser
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers lists users with pagination
func (u *UserUsecase) ListUsers(ctx context.Context, skip, limit int) ([]*entities.User, error) {
	return u.userRepo.List(ctx, skip, limit)
}

// GetUserByID fetches a user by id
func (u *UserUsecase) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// UpdateUser applies the provided fields to an existing user
func (u *UserUsecase) UpdateUser(ctx context.Context, id uint, input *entities.UpdateUserInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Password != nil {
		passwordHash, err := crypto.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, id)
}
