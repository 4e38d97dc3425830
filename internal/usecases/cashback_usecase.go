package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"cashback.backend/internal/domain/cashback"
	"cashback.backend/internal/domain/entities"
	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/domain/repositories"
)

// PartnerClient fetches the accumulated cashback total from the partner
// API.
type PartnerClient interface {
	GetTotalCashback(ctx context.Context, cpf string) (decimal.Decimal, error)
}

// CashbackUsecase proxies the partner's aggregate cashback figure
type CashbackUsecase struct {
	userRepo repositories.UserRepository
	partner  PartnerClient
}

// NewCashbackUsecase creates a new cashback usecase
func NewCashbackUsecase(userRepo repositories.UserRepository, partner PartnerClient) *CashbackUsecase {
	return &CashbackUsecase{
		userRepo: userRepo,
		partner:  partner,
	}
}

// GetTotalCashback returns the partner-accumulated credit for a CPF. Only
// the subject reseller or a superuser may ask; the CPF must belong to a
// registered identity. Partner failures pass through untouched, with no
// fallback value.
func (u *CashbackUsecase) GetTotalCashback(ctx context.Context, current *entities.User, cpf string) (*entities.CashbackTotal, error) {
	normalized := cashback.NormalizeCPF(cpf)

	if current.CPF.String != normalized && !current.IsSuperuser {
		return nil, domainerrors.ErrForbidden
	}

	if _, err := u.userRepo.GetByCPF(ctx, normalized); err != nil {
		return nil, err
	}

	credit, err := u.partner.GetTotalCashback(ctx, normalized)
	if err != nil {
		return nil, err
	}

	return &entities.CashbackTotal{
		CPF:    normalized,
		Credit: credit,
	}, nil
}
