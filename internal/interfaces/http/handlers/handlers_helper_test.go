package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cashback.backend/internal/domain/cashback"
	"cashback.backend/internal/domain/entities"
	"cashback.backend/internal/infrastructure/boticario"
	"cashback.backend/internal/infrastructure/repositories"
	"cashback.backend/internal/interfaces/http/middleware"
	"cashback.backend/internal/usecases"
	"cashback.backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testApp is the full HTTP surface wired against an in-memory database,
// mirroring the route table the server registers.
type testApp struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwt.Service
	users      *usecases.UserUsecase
}

func newTestApp(t *testing.T, partner usecases.PartnerClient) *testApp {
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

	userRepo := repositories.NewUserRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	jwtService := jwt.NewService("test-secret", time.Hour)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	userUsecase := usecases.NewUserUsecase(userRepo)
	orderUsecase := usecases.NewOrderUsecase(orderRepo, userRepo, cashback.DefaultBracketTable(), cashback.DefaultAllowList())
	cashbackUsecase := usecases.NewCashbackUsecase(userRepo, partner)

	authHandler := NewAuthHandler(authUsecase)
	userHandler := NewUserHandler(userUsecase)
	orderHandler := NewOrderHandler(orderUsecase)
	cashbackHandler := NewCashbackHandler(cashbackUsecase)
	healthHandler := NewHealthHandler(db)

	authRequired := middleware.AuthMiddleware(jwtService, authUsecase)

	router := gin.New()
	router.GET("/healthz", healthHandler.Healthz)
	router.POST("/login/access-token/", authHandler.Login)
	router.POST("/login/test-token/", authRequired, authHandler.TestToken)

	users := router.Group("/users", authRequired, middleware.RequireSuperuser())
	users.POST("/", userHandler.CreateUser)
	users.GET("/", userHandler.ListUsers)

	user := router.Group("/user", authRequired)
	user.GET("/profile/", userHandler.GetProfile)
	user.PUT("/profile/", userHandler.UpdateProfile)
	user.GET("/:id/", userHandler.GetUserByID)
	user.PUT("/:id/", middleware.RequireSuperuser(), userHandler.UpdateUserByID)

	orders := router.Group("/orders", authRequired)
	orders.POST("/", orderHandler.CreateOrder)
	orders.GET("/", orderHandler.ListOrders)

	router.GET("/cashback/:cpf/", authRequired, cashbackHandler.GetTotalCashback)

	return &testApp{
		router:     router,
		db:         db,
		jwtService: jwtService,
		users:      userUsecase,
	}
}

func (a *testApp) seedUser(t *testing.T, email, cpf string, superuser bool) *entities.User {
	t.Helper()
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
	user, err := a.users.CreateUser(context.Background(), input)
	require.NoError(t, err)
	return user
}

func (a *testApp) token(t *testing.T, user *entities.User) string {
	t.Helper()
	token, err := a.jwtService.GenerateToken(user.ID)
	require.NoError(t, err)
	return token
}

func (a *testApp) request(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postJSON(t *testing.T, path, token, body string) *httptest.ResponseRecorder {
	return a.request(t, http.MethodPost, path, token, strings.NewReader(body), "application/json")
}

func (a *testApp) putJSON(t *testing.T, path, token, body string) *httptest.ResponseRecorder {
	return a.request(t, http.MethodPut, path, token, strings.NewReader(body), "application/json")
}

func (a *testApp) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	return a.request(t, http.MethodGet, path, token, nil, "")
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	return a.request(t, http.MethodPost, path, "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// partnerStub satisfies usecases.PartnerClient without the HTTP hop.
type partnerStub struct {
	credit decimal.Decimal
	err    error
	calls  int
}

func (p *partnerStub) GetTotalCashback(ctx context.Context, cpf string) (decimal.Decimal, error) {
	p.calls++
	if p.err != nil {
		return decimal.Decimal{}, p.err
	}
	return p.credit, nil
}

// newPartnerServer spins up a fake partner API and a real client against
// it, for the tests that exercise the full proxy path.
func newPartnerServer(t *testing.T, credit string, status int) *boticario.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		fmt.Fprintf(w, `{"statusCode":200,"body":{"credit":%s}}`, credit)
	}))
	t.Cleanup(srv.Close)
	return boticario.NewClient(boticario.Config{BaseURL: srv.URL, APIToken: "test-token"})
}
