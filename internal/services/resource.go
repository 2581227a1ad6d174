package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/wishlist-backend/internal/data/repos"
	repores "github.com/yungbote/wishlist-backend/internal/data/repos/resources"
	types "github.com/yungbote/wishlist-backend/internal/domain"
	"github.com/yungbote/wishlist-backend/internal/domain/resources"
	"github.com/yungbote/wishlist-backend/internal/platform/apierr"
	"github.com/yungbote/wishlist-backend/internal/platform/dbctx"
	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

// ResourceService implements list/show/create/update/delete for one owned
// resource kind. The requester is always passed explicitly.
type ResourceService[T any, PT resources.Owned[T]] interface {
	Kind() string
	List(ctx context.Context, requesterID uuid.UUID) ([]*T, error)
	Show(ctx context.Context, requesterID, id uuid.UUID) (*T, error)
	Create(ctx context.Context, requesterID uuid.UUID, in *T) (*T, error)
	Update(ctx context.Context, requesterID, id uuid.UUID, patch resources.Patch[T]) error
	Delete(ctx context.Context, requesterID, id uuid.UUID) error
}

type ProfileService = ResourceService[types.Profile, *types.Profile]
type WishlistService = ResourceService[types.Wishlist, *types.Wishlist]

type ResourceOptions struct {
	// ShowRequiresOwnership makes Show apply the ownership guard. Off by default:
	// any authenticated user may read a record by id.
	ShowRequiresOwnership bool
}

type resourceService[T any, PT resources.Owned[T]] struct {
	log  *logger.Logger
	repo repores.OwnedRepo[T, PT]
	kind string
	opts ResourceOptions
}

func newResourceService[T any, PT resources.Owned[T]](log *logger.Logger, kind string, repo repores.OwnedRepo[T, PT], opts ResourceOptions) ResourceService[T, PT] {
	return &resourceService[T, PT]{
		log:  log.With("service", kind+"Service"),
		repo: repo,
		kind: kind,
		opts: opts,
	}
}

func NewProfileService(log *logger.Logger, repo repos.ProfileRepo, opts ResourceOptions) ProfileService {
	return newResourceService(log, "profile", repo, opts)
}

func NewWishlistService(log *logger.Logger, repo repos.WishlistRepo, opts ResourceOptions) WishlistService {
	return newResourceService(log, "wishlist", repo, opts)
}

func (s *resourceService[T, PT]) Kind() string { return s.kind }

func (s *resourceService[T, PT]) List(ctx context.Context, requesterID uuid.UUID) ([]*T, error) {
	rows, err := s.repo.ListByOwner(dbctx.Context{Ctx: ctx}, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", s.kind, err)
	}
	return rows, nil
}

func (s *resourceService[T, PT]) Show(ctx context.Context, requesterID, id uuid.UUID) (*T, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.opts.ShowRequiresOwnership {
		if err := RequireOwnership(requesterID, PT(rec)); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Create inserts in owned by requesterID, or, when the requester already has a
// record with the same name, overwrites that record and returns it. The lookup
// and the write are separate statements; concurrent creates can race.
func (s *resourceService[T, PT]) Create(ctx context.Context, requesterID uuid.UUID, in *T) (*T, error) {
	if in == nil {
		return nil, apierr.BadParams(fmt.Errorf("missing %s", s.kind))
	}
	PT(in).SetOwnerID(requesterID)
	if err := PT(in).Validate(); err != nil {
		return nil, apierr.Validation(err)
	}

	dbc := dbctx.Context{Ctx: ctx}
	existing, err := s.repo.FindByOwnerAndName(dbc, requesterID, PT(in).GetName(), 1)
	if err != nil {
		return nil, fmt.Errorf("lookup %s by name: %w", s.kind, err)
	}

	if len(existing) == 1 {
		next := *in
		PT(&next).SetID(PT(existing[0]).GetID())
		if err := s.repo.Update(dbc, &next); err != nil {
			return nil, fmt.Errorf("update existing %s: %w", s.kind, err)
		}
		s.log.Debug("Create matched existing record by name", "id", PT(&next).GetID(), "owner_id", requesterID)
		return s.load(ctx, PT(&next).GetID())
	}

	created, err := s.repo.Create(dbc, []*T{in})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}
	return created[0], nil
}

func (s *resourceService[T, PT]) Update(ctx context.Context, requesterID, id uuid.UUID, patch resources.Patch[T]) error {
	rec, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := RequireOwnership(requesterID, PT(rec)); err != nil {
		return err
	}

	next := *rec
	if patch != nil {
		patch.ApplyTo(&next)
	}
	PT(&next).SetID(PT(rec).GetID())
	PT(&next).SetOwnerID(PT(rec).GetOwnerID())
	if err := PT(&next).Validate(); err != nil {
		return apierr.Validation(err)
	}
	if err := s.repo.Update(dbctx.Context{Ctx: ctx}, &next); err != nil {
		return fmt.Errorf("update %s: %w", s.kind, err)
	}
	return nil
}

func (s *resourceService[T, PT]) Delete(ctx context.Context, requesterID, id uuid.UUID) error {
	rec, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := RequireOwnership(requesterID, PT(rec)); err != nil {
		return err
	}
	if err := s.repo.FullDeleteByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{PT(rec).GetID()}); err != nil {
		return fmt.Errorf("delete %s: %w", s.kind, err)
	}
	return nil
}

// load is fetch followed by the not-found guard.
func (s *resourceService[T, PT]) load(ctx context.Context, id uuid.UUID) (*T, error) {
	rec, err := s.repo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.kind, err)
	}
	return Handle404(s.kind, rec)
}
