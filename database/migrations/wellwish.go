package migrations

import (
	"undangan.link/configs/configslog"
	"undangan.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateWellWishesTable ucapan tablosunu oluşturur/günceller.
func MigrateWellWishesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating ucapan table...")
	if err := db.AutoMigrate(&models.WellWish{}); err != nil {
		configslog.Log.Error("Failed to migrate ucapan table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Ucapan table migrated successfully")
	return nil
}
