package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"cashback.backend/internal/domain/cashback"
)

// Order represents a reseller order with its computed cashback. The
// cashback fields and status are derived at creation time and never
// change afterwards; when no bracket matches the value they stay null.
type Order struct {
	ID                 uint                `json:"id"`
	Code               string              `json:"code"`
	Value              decimal.Decimal     `json:"value"`
	CashbackPercentage null.Int            `json:"cashback_percentage"`
	CashbackValue      decimal.NullDecimal `json:"cashback_value"`
	Status             cashback.Status     `json:"order_status"`
	Date               time.Time           `json:"date"`
	ResellerCPF        string              `json:"reseller_cpf"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// CreateOrderInput represents input for submitting an order. Value is
// bound as a raw JSON number so precision survives until the decimal
// conversion.
type CreateOrderInput struct {
	Code  string      `json:"code" binding:"required"`
	Value json.Number `json:"value" binding:"required"`
	Date  string      `json:"date" binding:"required"`
	CPF   string      `json:"cpf" binding:"required"`
}

// ListOrdersQuery represents the query parameters of the order listing.
type ListOrdersQuery struct {
	CPF   string `form:"cpf"`
	Skip  int    `form:"skip,default=0"`
	Limit int    `form:"limit,default=100"`
}

// CashbackTotal represents the aggregate cashback figure proxied from the
// partner service.
type CashbackTotal struct {
	CPF    string          `json:"cpf"`
	Credit decimal.Decimal `json:"credit"`
}
