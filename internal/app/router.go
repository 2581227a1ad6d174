package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/wishlist-backend/internal/http"
	"github.com/yungbote/wishlist-backend/internal/observability"
	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *gin.Engine {
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		ServiceName:     cfg.Otel.ServiceName,
		AllowedOrigins:  cfg.AllowedOrigins,
		HealthHandler:   handlers.Health,
		AuthHandler:     handlers.Auth,
		AuthMiddleware:  middleware.Auth,
		UserHandler:     handlers.User,
		ProfileHandler:  handlers.Profile,
		WishlistHandler: handlers.Wishlist,
	})
}
