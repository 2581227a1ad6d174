package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/wishlist-backend/internal/http/handlers"
	"github.com/yungbote/wishlist-backend/internal/observability"
	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Profile  *httpH.ProfileHandler
	Wishlist *httpH.WishlistHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(db, log),
		Auth:     httpH.NewAuthHandler(services.Auth, metrics),
		User:     httpH.NewUserHandler(services.User),
		Profile:  httpH.NewProfileHandler(services.Profile, metrics),
		Wishlist: httpH.NewWishlistHandler(services.Wishlist, metrics),
	}
}
