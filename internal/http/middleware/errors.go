package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/wishlist-backend/internal/http/response"
	"github.com/yungbote/wishlist-backend/internal/observability"
	"github.com/yungbote/wishlist-backend/internal/platform/apierr"
	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

// ErrorResponder turns the last error a handler attached with c.Error into the
// JSON error envelope. Messages of 5xx errors are not exposed to clients.
func ErrorResponder(log *logger.Logger, m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		ae := apierr.FromError(err)
		m.IncAPIError(ae.Code)

		if ae.Status >= http.StatusInternalServerError {
			if log != nil {
				log.Error("Request failed", "path", c.FullPath(), "status", ae.Status, "error", err)
			}
			response.RespondError(c, ae.Status, ae.Code, errors.New(http.StatusText(ae.Status)))
			return
		}
		response.RespondError(c, ae.Status, ae.Code, ae)
	}
}
