package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WellWish ("ucapan") davetlinin bıraktığı tebrik mesajı. Sadece eklenir.
type WellWish struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PersonalizeID uuid.UUID  `gorm:"type:uuid;not null;index:idx_ucapan_personalize_created,priority:1" json:"personalize_id"`
	GuestID       *uuid.UUID `gorm:"type:uuid;index" json:"guest_id,omitempty"` // Davetli silinirse NULL olur
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	CreatedAt     time.Time  `gorm:"index:idx_ucapan_personalize_created,priority:2" json:"created_at"`
}

func (WellWish) TableName() string { return "ucapan" }

func (w *WellWish) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
