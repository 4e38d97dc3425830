package middleware

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cashback.backend/internal/domain/entities"
	"cashback.backend/internal/infrastructure/repositories"
	"cashback.backend/internal/usecases"
	"cashback.backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

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
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, cpf string, superuser bool) *entities.User {
	t.Helper()
	usecase := usecases.NewUserUsecase(repositories.NewUserRepository(db))

	input := &entities.CreateUserInput{
		Email:    email,
		Password: "s3cretpass",
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

func newAuthStack(t *testing.T) (*gorm.DB, *jwt.Service, *usecases.AuthUsecase) {
	t.Helper()
	db := newTestDB(t)
	jwtService := jwt.NewService("test-secret", time.Hour)
	authUsecase := usecases.NewAuthUsecase(repositories.NewUserRepository(db), jwtService)
	return db, jwtService, authUsecase
}

// protectedRouter wires the auth middleware in front of an echo handler
// that reports which user the middleware resolved.
func protectedRouter(jwtService *jwt.Service, authUsecase *usecases.AuthUsecase, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	group := router.Group("/", AuthMiddleware(jwtService, authUsecase))
	group.Use(extra...)
	group.GET("/whoami", func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
	})
	return router
}
