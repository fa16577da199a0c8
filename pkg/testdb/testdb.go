// Package testdb testler için geçici, migrate edilmiş bir SQLite veritabanı açar.
package testdb

import (
	"path/filepath"
	"testing"
	"time"

	"undangan.link/configs/configsdatabase"
	"undangan.link/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New t.TempDir() altında bir SQLite dosyası açar, tabloları oluşturur ve
// test bitince bağlantıyı kapatır.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(configsdatabase.SQLiteDSN(path)), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // SQLite tek yazar
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrationsInOrder(db))
	return db
}

// Seeded New'e ek olarak demo tenant'ı oluşturur.
func Seeded(t testing.TB) *gorm.DB {
	t.Helper()
	db := New(t)
	require.NoError(t, database.CheckAndRunSeeders(db))
	return db
}
