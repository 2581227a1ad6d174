package resources

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Name      string    `gorm:"not null;column:name;index:idx_profile_owner_name,priority:2" json:"name"`
	Dob       string    `gorm:"not null;column:dob" json:"dob"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;column:owner_id;index:idx_profile_owner_name,priority:1" json:"owner"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Profile) TableName() string { return "profile" }

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Profile) GetID() uuid.UUID { return p.ID }
func (p *Profile) SetID(id uuid.UUID) { p.ID = id }
func (p *Profile) GetOwnerID() uuid.UUID { return p.OwnerID }
func (p *Profile) SetOwnerID(id uuid.UUID) { p.OwnerID = id }
func (p *Profile) GetName() string { return p.Name }

func (p *Profile) Validate() error {
	return requireFields("profile",
		required{"name", p.Name},
		required{"dob", p.Dob},
	)
}

type ProfilePatch struct {
	Name *string `json:"name"`
	Dob  *string `json:"dob"`
}

func (pp ProfilePatch) ApplyTo(p *Profile) {
	apply(&p.Name, pp.Name)
	apply(&p.Dob, pp.Dob)
}
