// whatsapp-pair davetiye göndericisinin kullanacağı WhatsApp cihazını QR kod ile eşleştirir.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/pkg/whatsapp"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.Load()
	dataDir := flag.String("data", cfg.WhatsApp.DataDir, "whatsmeow cihaz deposu dizini")
	flag.Parse()

	configslog.InitLogger()
	defer configslog.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := whatsapp.OpenClient(ctx, *dataDir, configslog.Log)
	if err != nil {
		configslog.Log.Fatal("WhatsApp istemcisi açılamadı", zap.Error(err))
	}
	if client.Store.ID != nil {
		configslog.SLog.Infof("Cihaz zaten eşleştirilmiş: %s", client.Store.ID.String())
		return
	}

	qrChan, err := client.GetQRChannel(ctx)
	if err != nil {
		configslog.Log.Fatal("QR kanalı alınamadı", zap.Error(err))
	}
	if err := client.Connect(); err != nil {
		configslog.Log.Fatal("WhatsApp bağlantısı kurulamadı", zap.Error(err))
	}
	defer client.Disconnect()

	for evt := range qrChan {
		switch evt.Event {
		case "code":
			q, err := qrcode.New(evt.Code, qrcode.Medium)
			if err != nil {
				fmt.Printf("QR Code: %s\n", evt.Code)
			} else {
				fmt.Println("\n" + q.ToSmallString(false))
			}
			fmt.Println("Pindai kode QR di atas dengan WhatsApp (Perangkat tertaut).")
		case "success":
			configslog.SLog.Infof("Eşleştirme tamamlandı: %s", client.Store.ID.String())
			return
		default:
			configslog.SLog.Warnf("Eşleştirme olayı: %s", evt.Event)
		}
	}
}
