package migrations

import (
	"undangan.link/configs/configslog"
	"undangan.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateRSVPTable rsvp tablosunu oluşturur/günceller.
// guest_id üzerindeki unique index upsert'in ON CONFLICT hedefidir.
func MigrateRSVPTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating rsvp table...")
	if err := db.AutoMigrate(&models.RSVP{}); err != nil {
		configslog.Log.Error("Failed to migrate rsvp table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Rsvp table migrated successfully")
	return nil
}
