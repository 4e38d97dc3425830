package usecases

import (
	"context"
	"errors"

	"cashback.backend/internal/domain/entities"
	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/domain/repositories"
	"cashback.backend/pkg/crypto"
	"cashback.backend/pkg/jwt"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.Service
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.Service) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password both come back as ErrInvalidCredentials so callers cannot
// enumerate accounts. Active and superuser flags are the caller's concern.
func (u *AuthUsecase) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates a user and issues an access token
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.TokenResponse, error) {
	user, err := u.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.ErrInactiveUser
	}

	token, err := u.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &entities.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// GetUserByID fetches a user by id
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
