package resources

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domainres "github.com/yungbote/wishlist-backend/internal/domain/resources"
	"github.com/yungbote/wishlist-backend/internal/platform/dbctx"
	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

// OwnedRepo stores one owned resource kind. Lookups that find nothing return
// (nil, nil); callers decide whether absence is an error.
type OwnedRepo[T any, PT domainres.Owned[T]] interface {
	Create(dbc dbctx.Context, rows []*T) ([]*T, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*T, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*T, error)
	FindByOwnerAndName(dbc dbctx.Context, ownerID uuid.UUID, name string, limit int) ([]*T, error)
	Update(dbc dbctx.Context, row *T) error
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type ownedRepo[T any, PT domainres.Owned[T]] struct {
	db  *gorm.DB
	log *logger.Logger
}

func newOwnedRepo[T any, PT domainres.Owned[T]](db *gorm.DB, baseLog *logger.Logger, name string) OwnedRepo[T, PT] {
	return &ownedRepo[T, PT]{db: db, log: baseLog.With("repo", name)}
}

type ProfileRepo = OwnedRepo[domainres.Profile, *domainres.Profile]
type WishlistRepo = OwnedRepo[domainres.Wishlist, *domainres.Wishlist]

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return newOwnedRepo[domainres.Profile](db, baseLog, "ProfileRepo")
}

func NewWishlistRepo(db *gorm.DB, baseLog *logger.Logger) WishlistRepo {
	return newOwnedRepo[domainres.Wishlist](db, baseLog, "WishlistRepo")
}

func (r *ownedRepo[T, PT]) Create(dbc dbctx.Context, rows []*T) ([]*T, error) {
	if len(rows) == 0 {
		return []*T{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ownedRepo[T, PT]) GetByID(dbc dbctx.Context, id uuid.UUID) (*T, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var results []*T
	if err := dbc.DB(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *ownedRepo[T, PT]) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*T, error) {
	results := []*T{}
	if err := dbc.DB(r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ownedRepo[T, PT]) FindByOwnerAndName(dbc dbctx.Context, ownerID uuid.UUID, name string, limit int) ([]*T, error) {
	var results []*T
	q := dbc.DB(r.db).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Update writes every column of row except id, owner_id and created_at.
func (r *ownedRepo[T, PT]) Update(dbc dbctx.Context, row *T) error {
	res := dbc.DB(r.db).
		Model(row).
		Select("*").
		Omit("id", "owner_id", "created_at").
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ownedRepo[T, PT]) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.DB(r.db).
		Where("id IN ?", ids).
		Delete(new(T)).Error
}
