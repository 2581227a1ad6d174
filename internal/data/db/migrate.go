package db

import (
	types "github.com/yungbote/wishlist-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Owned resources
		&types.Profile{},
		&types.Wishlist{},
	)
}
