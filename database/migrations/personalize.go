package migrations

import (
	"undangan.link/configs/configslog"
	"undangan.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigratePersonalizeTable personalize tablosunu oluşturur/günceller.
// users tablosu önce oluşmuş olmalı (user_id FK).
func MigratePersonalizeTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating personalize table...")
	if err := db.AutoMigrate(&models.Personalize{}); err != nil {
		configslog.Log.Error("Failed to migrate personalize table", zap.Error(err))
		return err
	}

	// Eski satırlarda NULL kalmış galeri kolonlarını boş diziye çek
	if err := db.Model(&models.Personalize{}).
		Where("gallery_image_urls IS NULL").
		Update("gallery_image_urls", "[]").Error; err != nil {
		configslog.Log.Error("Failed to backfill gallery_image_urls", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Personalize table migrated successfully")
	return nil
}
