package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/wishlist-backend/internal/http/handlers"
	httpMW "github.com/yungbote/wishlist-backend/internal/http/middleware"
	"github.com/yungbote/wishlist-backend/internal/observability"
	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	ProfileHandler  *httpH.ProfileHandler
	WishlistHandler *httpH.WishlistHandler

	HealthHandler *httpH.HealthHandler
}

// resourceRoutes is the handler set mounted for each owned resource kind.
type resourceRoutes interface {
	List(*gin.Context)
	Show(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "wishlist-backend"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.ErrorResponder(log, cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.POST("/sign-up", cfg.AuthHandler.Register)
		r.POST("/sign-in", cfg.AuthHandler.Login)
		r.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	protected := r.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.PATCH("/change-password", cfg.AuthHandler.ChangePassword)
			protected.DELETE("/sign-out", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		if cfg.ProfileHandler != nil {
			mountResource(protected, "/profiles", cfg.ProfileHandler)
		}
		if cfg.WishlistHandler != nil {
			mountResource(protected, "/wishlists", cfg.WishlistHandler)
		}
	}

	return r
}

func mountResource(g *gin.RouterGroup, path string, h resourceRoutes) {
	g.GET(path, h.List)
	g.GET(path+"/:id", h.Show)
	g.POST(path, h.Create)
	g.PATCH(path+"/:id", httpMW.RemoveBlanks(), h.Update)
	g.DELETE(path+"/:id", h.Delete)
}
