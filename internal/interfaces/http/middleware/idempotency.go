package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/interfaces/http/response"
	"cashback.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a request
// carries an Idempotency-Key that was already processed for the same
// user. Keys are scoped per user so two resellers can reuse the same
// key without colliding. Requests without the header pass through, as
// does everything when Redis is not configured.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || redis.GetClient() == nil {
			c.Next()
			return
		}

		var userID uint
		if user, ok := CurrentUser(c); ok {
			userID = user.ID
		}
		storageKey := fmt.Sprintf("idempotency:%d:%s", userID, key)

		ctx := c.Request.Context()
		val, err := redis.Get(ctx, storageKey)
		switch {
		case err == nil:
			if val == processingMarker {
				response.AbortError(c, domainerrors.Conflict("Request already in progress"))
				return
			}
			c.Header("X-Idempotency-Hit", "true")
			c.Data(http.StatusOK, "application/json", []byte(val))
			c.Abort()
			return
		case !errors.Is(err, goredis.Nil):
			// Redis is down; serving the request beats failing it
			c.Next()
			return
		}

		acquired, err := redis.SetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			response.AbortError(c, domainerrors.Conflict("Request already in progress"))
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			_ = redis.Set(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			// Free the key so the caller can retry after a failure
			_ = redis.Del(ctx, storageKey)
		}
	}
}
