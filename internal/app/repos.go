package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/wishlist-backend/internal/data/repos"
	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Profile   repos.ProfileRepo
	Wishlist  repos.WishlistRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Profile:   repos.NewProfileRepo(db, log),
		Wishlist:  repos.NewWishlistRepo(db, log),
	}
}
