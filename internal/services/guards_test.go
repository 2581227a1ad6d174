package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/wishlist-backend/internal/domain"
	"github.com/yungbote/wishlist-backend/internal/platform/apierr"
)

func TestRequireOwnership(t *testing.T) {
	owner := uuid.New()
	w := &types.Wishlist{OwnerID: owner}

	assert.NoError(t, RequireOwnership(owner, w))

	err := RequireOwnership(uuid.New(), w)
	require.Error(t, err)
	assert.True(t, apierr.Is(err, apierr.CodeOwnership))
	assert.Equal(t, 401, apierr.FromError(err).Status)

	assert.Error(t, RequireOwnership(uuid.Nil, &types.Wishlist{}))
}

func TestHandle404(t *testing.T) {
	p := &types.Profile{Name: "me"}
	got, err := Handle404("profile", p)
	require.NoError(t, err)
	assert.Same(t, p, got)

	var missing *types.Profile
	got, err = Handle404("profile", missing)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Equal(t, 404, apierr.FromError(err).Status)
	assert.Contains(t, err.Error(), "profile not found")
}
