package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cashback.backend/internal/domain/entities"
	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/interfaces/http/middleware"
	"cashback.backend/internal/interfaces/http/response"
	"cashback.backend/internal/usecases"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderUsecase *usecases.OrderUsecase
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase *usecases.OrderUsecase) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
	}
}

// CreateOrder submits an order. The cashback fields and the approval
// status come back already computed.
// POST /orders/
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input entities.CreateOrderInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	order, err := h.orderUsecase.CreateOrder(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrResellerNotFound):
			response.Error(c, domainerrors.Conflict("There is no reseller with this CPF"))
		case errors.Is(err, domainerrors.ErrValueOverflow):
			response.Error(c, domainerrors.Validation("Order value exceeds the supported precision"))
		case errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.Validation("Invalid order value or date"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, order)
}

// ListOrders lists orders visible to the caller. Superusers may pass
// ?cpf= to scope the listing to one reseller.
// GET /orders/
func (h *OrderHandler) ListOrders(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var query entities.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	orders, err := h.orderUsecase.ListOrders(c.Request.Context(), current, &query)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("There is no reseller with this CPF"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders)
}
