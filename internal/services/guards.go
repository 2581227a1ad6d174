package services

import (
	"github.com/google/uuid"

	"github.com/yungbote/wishlist-backend/internal/platform/apierr"
)

// Ownable is anything carrying an owner reference.
type Ownable interface {
	GetOwnerID() uuid.UUID
}

// RequireOwnership fails with an ownership error (401) unless requesterID owns
// rec. Call it after the record is loaded and before any mutation.
func RequireOwnership(requesterID uuid.UUID, rec Ownable) error {
	if rec == nil || requesterID == uuid.Nil || rec.GetOwnerID() != requesterID {
		return apierr.Ownership()
	}
	return nil
}

// Handle404 passes rec through unchanged, or fails with not-found when it is nil.
func Handle404[T any](kind string, rec *T) (*T, error) {
	if rec == nil {
		return nil, apierr.NotFound(kind)
	}
	return rec, nil
}
