package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainerrors "cashback.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response, translating AppError into its HTTP
// status; anything else becomes a 500.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// AbortError sends an error response and aborts the middleware chain
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
