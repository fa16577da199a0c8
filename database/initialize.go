package database

import (
	"errors"

	"undangan.link/configs/configslog"
	"undangan.link/database/migrations"
	"undangan.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyon ve seed adımlarını tek transaction içinde çalıştırır.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")
	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Migrasyonlar tamamlandı.")
		} else {
			configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
		}

		if seed {
			configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
			if err := CheckAndRunSeeders(tx); err != nil {
				configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Seeder'lar tamamlandı.")
		} else {
			configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
		}
		return nil
	})
	if err != nil {
		configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alındı.")
		return err
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

type migrationStep struct {
	name string
	run  func(*gorm.DB) error
}

// FK sırası önemli: users -> personalize -> guests -> rsvp, ucapan
var migrationSteps = []migrationStep{
	{"User", migrations.MigrateUsersTable},
	{"Personalize", migrations.MigratePersonalizeTable},
	{"Guest", migrations.MigrateGuestsTable},
	{"RSVP", migrations.MigrateRSVPTable},
	{"Ucapan", migrations.MigrateWellWishesTable},
}

// RunMigrationsInOrder tüm tabloları bağımlılık sırasıyla migrate eder.
func RunMigrationsInOrder(db *gorm.DB) error {
	if db == nil {
		return errors.New("migrasyon için veritabanı bağlantısı yok")
	}
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")

	for _, step := range migrationSteps {
		configslog.SLog.Infof(" -> %s migrasyonları çalıştırılıyor...", step.name)
		if err := step.run(db); err != nil {
			configslog.Log.Error("Migrasyon adımı başarısız oldu", zap.String("step", step.name), zap.Error(err))
			return err
		}
		configslog.SLog.Infof(" -> %s migrasyonları tamamlandı.", step.name)
	}

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

// CheckAndRunSeeders seed verilerini (yoksa) oluşturur.
func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Demo tenant seeder çalıştırılıyor...")
	if err := seeders.SeedDemoTenant(db); err != nil {
		configslog.Log.Error("Demo tenant seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Demo tenant seeder tamamlandı.")

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
