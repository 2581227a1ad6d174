package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	types "github.com/yungbote/wishlist-backend/internal/domain"
)

// SeedPassword is the plaintext password of every seeded user.
const SeedPassword = "pw-123456"

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &types.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: string(hashed),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedWishlist(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) *types.Wishlist {
	tb.Helper()
	w := &types.Wishlist{
		Name:     name,
		Item:     "Bike",
		Price:    "100",
		Location: "Store",
		OwnerID:  ownerID,
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed wishlist: %v", err)
	}
	return w
}

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) *types.Profile {
	tb.Helper()
	p := &types.Profile{
		Name:    name,
		Dob:     "1990-01-01",
		OwnerID: ownerID,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}
