package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"cashback.backend/internal/domain/entities"
	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/interfaces/http/response"
	"cashback.backend/internal/usecases"
	"cashback.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// CurrentUserKey is the context key for the authenticated user
	CurrentUserKey = "currentUser"
)

// AuthMiddleware validates the bearer token and loads the authenticated
// user into the request context. Tokens for deleted users are rejected,
// as are tokens for users that have since been deactivated.
func AuthMiddleware(jwtService *jwt.Service, authUsecase *usecases.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.AbortError(c, domainerrors.Unauthorized("Not authenticated"))
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.AbortError(c, domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.AbortError(c, domainerrors.Unauthorized("Token has expired"))
				return
			}
			response.AbortError(c, domainerrors.Unauthorized("Could not validate credentials"))
			return
		}

		user, err := authUsecase.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				response.AbortError(c, domainerrors.NotFound("User not found"))
				return
			}
			response.AbortError(c, err)
			return
		}

		if !user.IsActive {
			response.AbortError(c, domainerrors.Unauthorized("Inactive user"))
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser gets the authenticated user from context
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entities.User)
	return user, ok
}

// RequireSuperuser creates a middleware that requires superuser privileges
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := CurrentUser(c)
		if !exists {
			response.AbortError(c, domainerrors.Unauthorized("Not authenticated"))
			return
		}
		if !user.IsSuperuser {
			response.AbortError(c, domainerrors.Forbidden("The user doesn't have enough privileges"))
			return
		}
		c.Next()
	}
}
