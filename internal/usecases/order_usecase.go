package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"cashback.backend/internal/domain/cashback"
	"cashback.backend/internal/domain/entities"
	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/domain/repositories"
	"cashback.backend/pkg/logger"
)

// maxOrderValue bounds the order value at the storage precision of 10
// integer digits; anything larger is rejected before the write.
var maxOrderValue = decimal.New(1, 10)

// OrderUsecase handles the order creation workflow and order listing
type OrderUsecase struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	rules     cashback.BracketTable
	allowList cashback.AllowList
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	rules cashback.BracketTable,
	allowList cashback.AllowList,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		rules:     rules,
		allowList: allowList,
	}
}

// CreateOrder runs the whole order lifecycle: validate the input, resolve
// the reseller by normalized CPF, apply the auto-approval rule and the
// cashback bracket, then persist the fully-populated order in one write.
// No partial order is ever visible: any failure before or during the
// insert leaves nothing behind.
func (u *OrderUsecase) CreateOrder(ctx context.Context, input *entities.CreateOrderInput) (*entities.Order, error) {
	value, err := decimal.NewFromString(input.Value.String())
	if err != nil || value.IsNegative() {
		return nil, domainerrors.ErrInvalidInput
	}
	value = value.RoundBank(2)
	if value.GreaterThanOrEqual(maxOrderValue) {
		return nil, domainerrors.ErrValueOverflow
	}

	date, err := parseOrderDate(input.Date)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}

	normalized := cashback.NormalizeCPF(input.CPF)
	if _, err := u.userRepo.GetByCPF(ctx, normalized); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrResellerNotFound
		}
		return nil, err
	}

	order := &entities.Order{
		Code:        input.Code,
		Value:       value,
		Status:      u.allowList.Status(normalized),
		Date:        date,
		ResellerCPF: normalized,
	}
	if res, ok := u.rules.Evaluate(value); ok {
		order.CashbackPercentage = null.IntFrom(res.Percentage)
		order.CashbackValue = decimal.NewNullDecimal(res.Value)
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info(ctx, "saved order",
		zap.String("reseller", order.ResellerCPF),
		zap.String("code", order.Code),
		zap.String("value", order.Value.String()),
		zap.String("cashback_value", nullDecimalString(order.CashbackValue)),
	)
	return order, nil
}

// ListOrders lists orders scoped by the caller's privileges: superusers
// may filter by any reseller CPF or list everything, everyone else only
// sees their own orders.
func (u *OrderUsecase) ListOrders(ctx context.Context, current *entities.User, query *entities.ListOrdersQuery) ([]*entities.Order, error) {
	if !current.IsSuperuser {
		return u.orderRepo.ListByReseller(ctx, current.CPF.String, query.Skip, query.Limit)
	}

	if query.CPF != "" {
		normalized := cashback.NormalizeCPF(query.CPF)
		if _, err := u.userRepo.GetByCPF(ctx, normalized); err != nil {
			return nil, err
		}
		return u.orderRepo.ListByReseller(ctx, normalized, query.Skip, query.Limit)
	}
	return u.orderRepo.List(ctx, query.Skip, query.Limit)
}

func parseOrderDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func nullDecimalString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "null"
	}
	return d.Decimal.String()
}
