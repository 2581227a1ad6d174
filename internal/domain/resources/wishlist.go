package resources

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Wishlist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Name      string    `gorm:"not null;column:name;index:idx_wishlist_owner_name,priority:2" json:"name"`
	Item      string    `gorm:"not null;column:item" json:"item"`
	Price     string    `gorm:"not null;column:price" json:"price"`
	Location  string    `gorm:"not null;column:location" json:"location"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;column:owner_id;index:idx_wishlist_owner_name,priority:1" json:"owner"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Wishlist) TableName() string { return "wishlist" }

func (w *Wishlist) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (w *Wishlist) GetID() uuid.UUID { return w.ID }
func (w *Wishlist) SetID(id uuid.UUID) { w.ID = id }
func (w *Wishlist) GetOwnerID() uuid.UUID { return w.OwnerID }
func (w *Wishlist) SetOwnerID(id uuid.UUID) { w.OwnerID = id }
func (w *Wishlist) GetName() string { return w.Name }

func (w *Wishlist) Validate() error {
	return requireFields("wishlist",
		required{"name", w.Name},
		required{"item", w.Item},
		required{"price", w.Price},
		required{"location", w.Location},
	)
}

type WishlistPatch struct {
	Name     *string `json:"name"`
	Item     *string `json:"item"`
	Price    *string `json:"price"`
	Location *string `json:"location"`
}

func (wp WishlistPatch) ApplyTo(w *Wishlist) {
	apply(&w.Name, wp.Name)
	apply(&w.Item, wp.Item)
	apply(&w.Price, wp.Price)
	apply(&w.Location, wp.Location)
}
