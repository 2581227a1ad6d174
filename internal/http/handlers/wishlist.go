package handlers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/wishlist-backend/internal/domain"
	"github.com/yungbote/wishlist-backend/internal/domain/resources"
	"github.com/yungbote/wishlist-backend/internal/observability"
	"github.com/yungbote/wishlist-backend/internal/services"
)

type WishlistHandler = ResourceHandler[types.Wishlist, *types.Wishlist]

type wishlistView struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Item      string    `json:"item"`
	Price     string    `json:"price"`
	Location  string    `json:"location"`
	Owner     uuid.UUID `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type wishlistInput struct {
	Name     optText `json:"name"`
	Item     optText `json:"item"`
	Price    optText `json:"price"`
	Location optText `json:"location"`
}

func viewWishlist(w *types.Wishlist) any {
	return wishlistView{
		ID:        w.ID,
		Name:      w.Name,
		Item:      w.Item,
		Price:     w.Price,
		Location:  w.Location,
		Owner:     w.OwnerID,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func decodeWishlistPatch(raw json.RawMessage) (resources.Patch[types.Wishlist], error) {
	var in wishlistInput
	if err := decodeInto(raw, "wishlist", &in); err != nil {
		return nil, err
	}
	return types.WishlistPatch{
		Name:     strOf(in.Name),
		Item:     strOf(in.Item),
		Price:    strOf(in.Price),
		Location: strOf(in.Location),
	}, nil
}

func decodeWishlistCreate(raw json.RawMessage) (*types.Wishlist, error) {
	var w types.Wishlist
	patch, err := decodeWishlistPatch(raw)
	if err != nil {
		return nil, err
	}
	patch.ApplyTo(&w)
	return &w, nil
}

func NewWishlistHandler(svc services.WishlistService, m *observability.Metrics) *WishlistHandler {
	return &WishlistHandler{
		svc:     svc,
		metrics: m,
		codec: resourceCodec[types.Wishlist]{
			singular:     "wishlist",
			plural:       "wishlists",
			decodeCreate: decodeWishlistCreate,
			decodePatch:  decodeWishlistPatch,
			view:         viewWishlist,
		},
	}
}
