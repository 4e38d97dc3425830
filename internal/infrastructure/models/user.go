package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type User struct {
	ID           uint        `gorm:"primaryKey;autoIncrement"`
	Email        string      `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string      `gorm:"type:varchar(255);not null"`
	FullName     string      `gorm:"type:varchar(150)"`
	CPF          null.String `gorm:"type:varchar(20);uniqueIndex"`
	IsActive     bool        `gorm:"not null;default:true"`
	IsSuperuser  bool        `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
