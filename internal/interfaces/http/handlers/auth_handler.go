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

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Login exchanges an OAuth2 password form for an access token
// POST /login/access-token/
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidCredentials):
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "Incorrect email or password", err))
		case errors.Is(err, domainerrors.ErrInactiveUser):
			response.Error(c, domainerrors.Unauthorized("Inactive user"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, token)
}

// TestToken echoes the user a valid token resolves to
// POST /login/test-token/
func (h *AuthHandler) TestToken(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}
	response.Success(c, http.StatusOK, user)
}
