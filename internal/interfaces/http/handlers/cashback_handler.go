package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/interfaces/http/middleware"
	"cashback.backend/internal/interfaces/http/response"
	"cashback.backend/internal/usecases"
)

// CashbackHandler proxies the partner's accumulated cashback figure
type CashbackHandler struct {
	cashbackUsecase *usecases.CashbackUsecase
}

// NewCashbackHandler creates a new cashback handler
func NewCashbackHandler(cashbackUsecase *usecases.CashbackUsecase) *CashbackHandler {
	return &CashbackHandler{
		cashbackUsecase: cashbackUsecase,
	}
}

// GetTotalCashback returns the partner-accumulated credit for a CPF
// GET /cashback/:cpf/
func (h *CashbackHandler) GetTotalCashback(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	total, err := h.cashbackUsecase.GetTotalCashback(c.Request.Context(), current, c.Param("cpf"))
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrForbidden):
			response.Error(c, domainerrors.Forbidden("You can only query your own cashback"))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("There is no reseller with this CPF"))
		case errors.Is(err, domainerrors.ErrUpstream):
			response.Error(c, domainerrors.Upstream("Cashback service unavailable", err))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, total)
}
