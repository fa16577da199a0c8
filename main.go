package main

import (
	"os"
	"os/signal"
	"syscall"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/di"
	"undangan.link/routes"

	"github.com/samber/do/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	container := di.NewContainer()
	cfg := do.MustInvoke[*configs.AppConfig](container)

	handlers, err := do.Invoke[*di.Handlers](container)
	if err != nil {
		configslog.Log.Fatal("Bağımlılıklar kurulamadı", zap.Error(err))
	}

	app := routes.NewApp(routes.AppOptions{
		BodyLimitMB: cfg.BodyLimitMB,
		ViewsDir:    "./views",
		Reload:      !cfg.IsProduction(),
	}, handlers)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Sunucu kapatılıyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu %s portunda başlatılıyor (env=%s)", cfg.Port, cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Error("Sunucu hatası", zap.Error(err))
	}

	if err := container.Shutdown(); err != nil {
		configslog.Log.Error("Bağımlılıklar kapatılamadı", zap.Error(err))
	}
	configslog.SLog.Info("Sunucu durduruldu")
}
