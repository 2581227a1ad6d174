package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/wishlist-backend/internal/platform/logger"
	"github.com/yungbote/wishlist-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Profile  services.ProfileService
	Wishlist services.WishlistService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	authService := services.NewAuthService(db, log, repos.User, repos.UserToken, clients.Sessions, services.AuthConfig{
		JWTSecretKey: cfg.JWTSecretKey,
		AccessTTL:    cfg.AccessTokenTTL,
		RefreshTTL:   cfg.RefreshTokenTTL,
		BcryptCost:   cfg.BcryptCost,
	})

	opts := services.ResourceOptions{ShowRequiresOwnership: cfg.ShowRequiresOwnership}
	return Services{
		Auth:     authService,
		User:     services.NewUserService(db, log, repos.User),
		Profile:  services.NewProfileService(log, repos.Profile, opts),
		Wishlist: services.NewWishlistService(log, repos.Wishlist, opts),
	}
}
