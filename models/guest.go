package models

import "github.com/google/uuid"

// InvitationType davetli kategorisi.
type InvitationType string

const (
	InvitationTypePersonal InvitationType = "personal"
	InvitationTypeGroup    InvitationType = "group"
)

// Guest bir tenant'a ait davetli. Code tenant içinde benzersizdir.
type Guest struct {
	BaseModel
	PersonalizeID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_guest_personalize_code,priority:1" json:"personalize_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone          string         `gorm:"type:varchar(50)" json:"phone"`
	Address        string         `gorm:"type:text" json:"address"`
	InvitationType InvitationType `gorm:"type:varchar(20);not null;default:'personal'" json:"invitation_type"`
	Code           string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_guest_personalize_code,priority:2;index" json:"code"`
	IsSent         bool           `gorm:"not null;default:false" json:"is_sent"`

	RSVP       *RSVP      `gorm:"foreignKey:GuestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	WellWishes []WellWish `gorm:"foreignKey:GuestID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

func (Guest) TableName() string { return "guests" }

// GuestWithRSVP davetli listesinde RSVP durumuyla birlikte dönen satır.
type GuestWithRSVP struct {
	Guest
	Status      string `json:"status"`       // RSVP yoksa "-"
	PeopleCount int    `json:"people_count"` // RSVP yoksa 0
}
