package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log yapılandırılmış alanlarla loglama için (zap.String, zap.Error ...)
	Log = zap.NewNop()
	// SLog printf tarzı loglama için
	SLog = Log.Sugar()
)

// InitLogger APP_ENV değerine göre global logger'ı kurar.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// Logger kurulamazsa uygulama çalışmaya devam etmemeli
		panic("logger başlatılamadı: " + err.Error())
	}

	SetLogger(logger)
	SLog.Infof("Logger başlatıldı (env=%s)", os.Getenv("APP_ENV"))
}

// SetLogger global logger'ı değiştirir (testlerde zaptest logger'ı için).
func SetLogger(logger *zap.Logger) {
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger tamponlanmış logları boşaltır.
func SyncLogger() {
	_ = Log.Sync()
}
