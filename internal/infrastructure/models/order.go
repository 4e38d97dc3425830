package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

type Order struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement"`
	Code               string          `gorm:"type:varchar(50);not null"`
	Value              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CashbackPercentage null.Int
	CashbackValue      decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Status             string              `gorm:"type:varchar(20);not null;default:'IN_VALIDATION'"`
	Date               time.Time
	ResellerCPF        string `gorm:"type:varchar(20);not null;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Order) TableName() string {
	return "orders"
}
