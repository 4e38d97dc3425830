package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cashback.backend/internal/domain/entities"
	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/interfaces/http/middleware"
	"cashback.backend/internal/interfaces/http/response"
	"cashback.backend/internal/usecases"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
	}
}

// CreateUser registers a reseller. Superuser only.
// POST /users/
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input entities.CreateUserInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	user, err := h.userUsecase.CreateUser(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			response.Error(c, domainerrors.Conflict("A user with this email or CPF already exists"))
		case errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.Validation("CPF must contain at least one digit"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// ListUsers lists users with pagination. Superuser only.
// GET /users/
func (h *UserHandler) ListUsers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	users, err := h.userUsecase.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, users)
}

// GetProfile returns the authenticated user
// GET /user/profile/
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateProfile updates the authenticated user
// PUT /user/profile/
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	user, err := h.userUsecase.UpdateUser(c.Request.Context(), current.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// GetUserByID returns a user by id. Regular users may only fetch
// themselves; anyone else requires superuser privileges.
// GET /user/:id/
func (h *UserHandler) GetUserByID(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a positive integer"))
		return
	}

	if uint(id) == current.ID {
		response.Success(c, http.StatusOK, current)
		return
	}

	if !current.IsSuperuser {
		response.Error(c, domainerrors.Forbidden("The user doesn't have enough privileges"))
		return
	}

	user, err := h.userUsecase.GetUserByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateUserByID updates an arbitrary user. Superuser only.
// PUT /user/:id/
func (h *UserHandler) UpdateUserByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a positive integer"))
		return
	}

	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	user, err := h.userUsecase.UpdateUser(c.Request.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
