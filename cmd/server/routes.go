package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cashback.backend/internal/interfaces/http/handlers"
	"cashback.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	userHandler     *handlers.UserHandler
	orderHandler    *handlers.OrderHandler
	cashbackHandler *handlers.CashbackHandler
	healthHandler   *handlers.HealthHandler
	authRequired    gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/healthz", d.healthHandler.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	login := r.Group("/login")
	{
		login.POST("/access-token/", d.authHandler.Login)
		login.POST("/test-token/", d.authRequired, d.authHandler.TestToken)
	}

	// User management (back-office only)
	users := r.Group("/users", d.authRequired, middleware.RequireSuperuser())
	{
		users.POST("/", d.userHandler.CreateUser)
		users.GET("/", d.userHandler.ListUsers)
	}

	// Per-user routes
	user := r.Group("/user", d.authRequired)
	{
		user.GET("/profile/", d.userHandler.GetProfile)
		user.PUT("/profile/", d.userHandler.UpdateProfile)
		user.GET("/:id/", d.userHandler.GetUserByID)
		user.PUT("/:id/", middleware.RequireSuperuser(), d.userHandler.UpdateUserByID)
	}

	// Order routes
	orders := r.Group("/orders", d.authRequired)
	{
		orders.POST("/", middleware.IdempotencyMiddleware(), d.orderHandler.CreateOrder)
		orders.GET("/", d.orderHandler.ListOrders)
	}

	// Partner cashback proxy
	r.GET("/cashback/:cpf/", d.authRequired, d.cashbackHandler.GetTotalCashback)
}
