package resources

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/wishlist-backend/internal/data/repos/testutil"
	types "github.com/yungbote/wishlist-backend/internal/domain"
	"github.com/yungbote/wishlist-backend/internal/platform/dbctx"
)

func TestWishlistRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewWishlistRepo(db, testutil.Logger(t))

	alice := uuid.New()
	bob := uuid.New()

	created, err := repo.Create(dbc, []*types.Wishlist{
		{Name: "Bday", Item: "Bike", Price: "100", Location: "Store", OwnerID: alice},
		{Name: "Xmas", Item: "Kite", Price: "20", Location: "Park", OwnerID: alice},
		{Name: "Bday", Item: "Book", Price: "15", Location: "Shop", OwnerID: bob},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)
	for _, w := range created {
		assert.NotEqual(t, uuid.Nil, w.ID)
		assert.False(t, w.CreatedAt.IsZero())
	}

	// ListByOwner never leaks other owners' rows
	rows, err := repo.ListByOwner(dbc, alice)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, w := range rows {
		assert.Equal(t, alice, w.OwnerID)
	}

	empty, err := repo.ListByOwner(dbc, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	// FindByOwnerAndName is scoped to the owner
	found, err := repo.FindByOwnerAndName(dbc, bob, "Bday", 1)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Book", found[0].Item)

	// GetByID
	got, err := repo.GetByID(dbc, created[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bike", got.Item)

	missing, err := repo.GetByID(dbc, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Update never rewrites the owner
	before := got.UpdatedAt
	time.Sleep(5 * time.Millisecond)
	got.Item = "Scooter"
	got.OwnerID = bob
	require.NoError(t, repo.Update(dbc, got))

	reloaded, err := repo.GetByID(dbc, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Scooter", reloaded.Item)
	assert.Equal(t, alice, reloaded.OwnerID)
	assert.True(t, reloaded.UpdatedAt.After(before))

	ghost := &types.Wishlist{ID: uuid.New(), Name: "x", Item: "x", Price: "x", Location: "x", OwnerID: alice}
	assert.Error(t, repo.Update(dbc, ghost))

	// FullDeleteByIDs
	require.NoError(t, repo.FullDeleteByIDs(dbc, []uuid.UUID{created[0].ID}))
	gone, err := repo.GetByID(dbc, created[0].ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestProfileRepoFindByOwnerAndName(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewProfileRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	testutil.SeedProfile(t, ctx, db, owner.ID, "me")

	rows, err := repo.FindByOwnerAndName(dbctx.Context{Ctx: ctx}, owner.ID, "me", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, owner.ID, rows[0].OwnerID)

	none, err := repo.FindByOwnerAndName(dbctx.Context{Ctx: ctx}, owner.ID, "someone else", 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}
