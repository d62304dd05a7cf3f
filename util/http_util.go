// api/util/http_util.go
package util

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	hcm_errors "github.com/talentforge/hcm/api/errors"
	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
)

// IdentityContextKey is where the auth middleware stores the caller identity.
const IdentityContextKey = "identity"

// RespondWithError logs the underlying error server-side and writes a
// structured error body. The body carries the request id and timestamp so a
// caller can reference the server-side log line; the underlying error detail
// never leaves the server.
func RespondWithError(c *gin.Context, code int, message string, err error) {
	requestID := uuid.New().String()
	logger.Error(message,
		zap.Error(err),
		zap.String("requestID", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{
		"error":      message,
		"request_id": requestID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// IdentityFromContext returns the caller identity set by the auth
// middleware. Handlers receive identity explicitly through this accessor;
// nothing reads ambient global state.
func IdentityFromContext(c *gin.Context) (model.Identity, error) {
	v, exists := c.Get(IdentityContextKey)
	if !exists {
		return model.Identity{}, hcm_errors.ErrUnauthorized
	}
	identity, ok := v.(model.Identity)
	if !ok || identity.Email == "" {
		return model.Identity{}, hcm_errors.ErrUnauthorized
	}
	return identity, nil
}
