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

type ProfileHandler = ResourceHandler[types.Profile, *types.Profile]

type profileView struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Dob       string    `json:"dob"`
	Owner     uuid.UUID `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type profileInput struct {
	Name optText `json:"name"`
	Dob  optText `json:"dob"`
}

func viewProfile(p *types.Profile) any {
	return profileView{
		ID:        p.ID,
		Name:      p.Name,
		Dob:       p.Dob,
		Owner:     p.OwnerID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func decodeProfilePatch(raw json.RawMessage) (resources.Patch[types.Profile], error) {
	var in profileInput
	if err := decodeInto(raw, "profile", &in); err != nil {
		return nil, err
	}
	return types.ProfilePatch{Name: strOf(in.Name), Dob: strOf(in.Dob)}, nil
}

func decodeProfileCreate(raw json.RawMessage) (*types.Profile, error) {
	var p types.Profile
	patch, err := decodeProfilePatch(raw)
	if err != nil {
		return nil, err
	}
	patch.ApplyTo(&p)
	return &p, nil
}

func NewProfileHandler(svc services.ProfileService, m *observability.Metrics) *ProfileHandler {
	return &ProfileHandler{
		svc:     svc,
		metrics: m,
		codec: resourceCodec[types.Profile]{
			singular:     "profile",
			plural:       "profiles",
			decodeCreate: decodeProfileCreate,
			decodePatch:  decodeProfilePatch,
			view:         viewProfile,
		},
	}
}
