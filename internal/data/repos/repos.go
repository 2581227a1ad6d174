package repos

import (
	"github.com/yungbote/wishlist-backend/internal/data/repos/auth"
	"github.com/yungbote/wishlist-backend/internal/data/repos/resources"
	"github.com/yungbote/wishlist-backend/internal/data/repos/user"
	"github.com/yungbote/wishlist-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type ProfileRepo = resources.ProfileRepo
type WishlistRepo = resources.WishlistRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return user.NewUserRepo(db, log)
}

func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, log)
}

func NewProfileRepo(db *gorm.DB, log *logger.Logger) ProfileRepo {
	return resources.NewProfileRepo(db, log)
}

func NewWishlistRepo(db *gorm.DB, log *logger.Logger) WishlistRepo {
	return resources.NewWishlistRepo(db, log)
}
