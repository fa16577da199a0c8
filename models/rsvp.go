package models

import "github.com/google/uuid"

// RSVPStatus katılım durumu. Değerler kullanıcıya gösterildiği şekliyle saklanır.
type RSVPStatus string

const (
	RSVPStatusAttending    RSVPStatus = "hadir"       // Katılacak
	RSVPStatusNotAttending RSVPStatus = "tidak hadir" // Katılmayacak
	RSVPStatusNone         RSVPStatus = "-"           // Listede: henüz cevap yok
)

// RSVP davetli başına tek cevap (guest_id unique); tekrar gönderim üzerine yazar.
type RSVP struct {
	BaseModel
	GuestID     uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"guest_id"`
	Status      RSVPStatus `gorm:"type:varchar(20);not null" json:"status"`
	PeopleCount int        `gorm:"not null;default:0" json:"people_count"`
}

func (RSVP) TableName() string { return "rsvp" }
