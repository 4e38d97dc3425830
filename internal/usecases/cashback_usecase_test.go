package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/infrastructure/repositories"
)

type stubPartner struct {
	credit decimal.Decimal
	err    error
	calls  int
}

func (s *stubPartner) GetTotalCashback(ctx context.Context, cpf string) (decimal.Decimal, error) {
	s.calls++
	return s.credit, s.err
}

func TestCashbackUsecase_GetTotalCashback(t *testing.T) {
	db := newTestDB(t)
	partner := &stubPartner{credit: decimal.RequireFromString("3254")}
	usecase := NewCashbackUsecase(repositories.NewUserRepository(db), partner)
	ctx := context.Background()

	reseller := seedUser(t, db, "maria@example.com", "password123", "345.123.434-55", false)

	total, err := usecase.GetTotalCashback(ctx, reseller, "345.123.434-55")
	require.NoError(t, err)
	require.Equal(t, "34512343455", total.CPF)
	require.True(t, decimal.RequireFromString("3254").Equal(total.Credit))
	require.Equal(t, 1, partner.calls)
}

func TestCashbackUsecase_GetTotalCashback_Forbidden(t *testing.T) {
	db := newTestDB(t)
	usecase := NewCashbackUsecase(repositories.NewUserRepository(db), &stubPartner{})
	ctx := context.Background()

	reseller := seedUser(t, db, "maria@example.com", "password123", "345.123.434-55", false)
	other := seedUser(t, db, "other@example.com", "password123", "153.509.460-56", false)

	_, err := usecase.GetTotalCashback(ctx, reseller, other.CPF.String)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCashbackUsecase_GetTotalCashback_SuperuserMayAskForAnyone(t *testing.T) {
	db := newTestDB(t)
	partner := &stubPartner{credit: decimal.NewFromInt(10)}
	usecase := NewCashbackUsecase(repositories.NewUserRepository(db), partner)
	ctx := context.Background()

	super := seedUser(t, db, "admin@example.com", "password123", "111.222.333-44", true)
	seedUser(t, db, "maria@example.com", "password123", "345.123.434-55", false)

	total, err := usecase.GetTotalCashback(ctx, super, "345.123.434-55")
	require.NoError(t, err)
	require.Equal(t, "34512343455", total.CPF)
}

func TestCashbackUsecase_GetTotalCashback_UnknownCPF(t *testing.T) {
	db := newTestDB(t)
	partner := &stubPartner{}
	usecase := NewCashbackUsecase(repositories.NewUserRepository(db), partner)
	ctx := context.Background()

	super := seedUser(t, db, "admin@example.com", "password123", "111.222.333-44", true)

	_, err := usecase.GetTotalCashback(ctx, super, "999.999.999-99")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.Zero(t, partner.calls, "partner not called for unknown CPF")
}

func TestCashbackUsecase_GetTotalCashback_UpstreamFailure(t *testing.T) {
	db := newTestDB(t)
	partner := &stubPartner{err: fmt.Errorf("status 502: %w", domainerrors.ErrUpstream)}
	usecase := NewCashbackUsecase(repositories.NewUserRepository(db), partner)
	ctx := context.Background()

	reseller := seedUser(t, db, "maria@example.com", "password123", "345.123.434-55", false)

	_, err := usecase.GetTotalCashback(ctx, reseller, "345.123.434-55")
	require.ErrorIs(t, err, domainerrors.ErrUpstream)
	require.Equal(t, 1, partner.calls, "single attempt, no retry")
}
