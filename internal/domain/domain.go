package domain

import (
	"github.com/yungbote/wishlist-backend/internal/domain/auth"
	"github.com/yungbote/wishlist-backend/internal/domain/resources"
	"github.com/yungbote/wishlist-backend/internal/domain/user"
)

type User = user.User
type UserToken = auth.UserToken

type Profile = resources.Profile
type ProfilePatch = resources.ProfilePatch
type Wishlist = resources.Wishlist
type WishlistPatch = resources.WishlistPatch
