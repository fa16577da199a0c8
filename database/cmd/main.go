package main

import (
	"flag"
	"os"

	"undangan.link/configs"
	"undangan.link/configs/configsdatabase"
	"undangan.link/configs/configslog"
	"undangan.link/database"

	"go.uber.org/zap"
)

// go run ./database/cmd -migrate -seed
func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Tabloları oluştur / güncelle")
	seedFlag := flag.Bool("seed", false, "Demo tenant'ı (dilan-milea) ekle")
	flag.Parse()

	cfg := configs.Load()
	db, err := configsdatabase.Open(cfg.Database, cfg.IsProduction())
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Fatal("Bağlantı havuzu alınamadı", zap.Error(err))
	}
	defer sqlDB.Close()

	if *seedFlag && cfg.IsProduction() {
		configslog.SLog.Warn("Production ortamında demo verisi ekleniyor")
	}

	if err := database.Initialize(db, *migrateFlag, *seedFlag); err != nil {
		configslog.Log.Error("Veritabanı hazırlanamadı", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		sqlDB.Close()
		os.Exit(1)
	}
}
