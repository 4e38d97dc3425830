package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cashback.backend/internal/domain/entities"
	"cashback.backend/internal/infrastructure/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(150),
		cpf VARCHAR(20) UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_superuser BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code VARCHAR(50) NOT NULL,
		value NUMERIC(12,2) NOT NULL,
		cashback_percentage INTEGER,
		cashback_value NUMERIC(12,2),
		status VARCHAR(20) NOT NULL DEFAULT 'IN_VALIDATION',
		date DATETIME,
		reseller_cpf VARCHAR(20) NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`).Error)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, password, cpf string, superuser bool) *entities.User {
	t.Helper()
	repo := repositories.NewUserRepository(db)
	usecase := NewUserUsecase(repo)

	input := &entities.CreateUserInput{
		Email:    email,
		Password: password,
		FullName: "Test User",
		CPF:      cpf,
	}
	if superuser {
		tr := true
		input.IsSuperuser = &tr
	}

	user, err := usecase.CreateUser(context.Background(), input)
	require.NoError(t, err)
	return user
}
