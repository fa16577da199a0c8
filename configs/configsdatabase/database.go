package configsdatabase

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"undangan.link/configs"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open verilen ayarlarla yeni bir *gorm.DB döner.
func Open(cfg configs.DatabaseConfig, production bool) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true, // unique ihlalleri gorm.ErrDuplicatedKey olarak gelsin
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	if production {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	} else {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	switch cfg.Driver {
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite dizini oluşturulamadı: %w", err)
			}
		}
		return gorm.Open(sqlite.Open(SQLiteDSN(cfg.SQLitePath)), gormCfg)
	case "postgres", "":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone)
		conn, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
		return conn, nil
	default:
		return nil, fmt.Errorf("desteklenmeyen DB_DRIVER: %s", cfg.Driver)
	}
}

// SQLiteDSN foreign key desteği açık bir sqlite bağlantı dizesi üretir.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}
