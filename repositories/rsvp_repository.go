package repositories

import (
	"context"

	"undangan.link/configs/configslog"
	"undangan.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IRSVPRepository RSVP veritabanı işlemleri için arayüz.
type IRSVPRepository interface {
	Upsert(ctx context.Context, rsvp *models.RSVP) error
}

// RSVPRepository IRSVPRepository arayüzünü uygular.
type RSVPRepository struct {
	db *gorm.DB
}

func NewRSVPRepository(db *gorm.DB) IRSVPRepository {
	return &RSVPRepository{db: db}
}

func (r *RSVPRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Upsert tek bir INSERT ... ON CONFLICT (guest_id) DO UPDATE ifadesidir; davetli başına tek satır kalır.
// Dönüşte rsvp tablodaki gerçek satırla doldurulur.
func (r *RSVPRepository) Upsert(ctx context.Context, rsvp *models.RSVP) error {
	db := r.getDB(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guest_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "people_count", "updated_at"}),
	}).Create(rsvp).Error
	if err != nil {
		configslog.Log.Error("RSVPRepository.Upsert: DB error", zap.String("guest_id", rsvp.GuestID.String()), zap.Error(err))
		return translateError(err)
	}
	var stored models.RSVP
	if err := db.Where("guest_id = ?", rsvp.GuestID).Take(&stored).Error; err != nil {
		return translateError(err)
	}
	*rsvp = stored
	return nil
}

var _ IRSVPRepository = (*RSVPRepository)(nil)
