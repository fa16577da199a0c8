// Package whatsapp davetiye linklerini whatsmeow üzerinden WhatsApp mesajı olarak gönderir.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3" // whatsmeow cihaz deposu
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"
)

var (
	ErrNotPaired     = errors.New("whatsapp cihazı eşleştirilmemiş")
	ErrNotConnected  = errors.New("whatsapp bağlantısı yok")
	ErrNotOnWhatsApp = errors.New("numara whatsapp'ta kayıtlı değil")
	ErrInvalidPhone  = errors.New("telefon numarası geçersiz")
)

// OpenClient dataDir altındaki sqlite cihaz deposunu açar ve bir istemci döner.
// Eşleştirme yapılmamışsa client.Store.ID nil olur.
func OpenClient(ctx context.Context, dataDir string, log *zap.Logger) (*whatsmeow.Client, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("whatsapp veri dizini oluşturulamadı: %w", err)
	}
	dsn := fmt.Sprintf("file:%s/whatsmeow.db?_foreign_keys=on", dataDir)
	container, err := sqlstore.New(ctx, "sqlite3", dsn, NewZapLogger(log, "WADatabase"))
	if err != nil {
		return nil, fmt.Errorf("whatsapp cihaz deposu açılamadı: %w", err)
	}
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("whatsapp cihazı alınamadı: %w", err)
	}
	return whatsmeow.NewClient(device, NewZapLogger(log, "WAClient")), nil
}

// Sender eşleştirilmiş bir cihazla metin mesajı gönderir.
type Sender struct {
	client *whatsmeow.Client
	log    *zap.Logger
	mu     sync.Mutex
}

// NewSender istemciyi açar; bağlantı Connect ile kurulur.
func NewSender(ctx context.Context, dataDir string, log *zap.Logger) (*Sender, error) {
	client, err := OpenClient(ctx, dataDir, log)
	if err != nil {
		return nil, err
	}
	s := &Sender{client: client, log: log}
	client.AddEventHandler(s.handleEvent)
	return s, nil
}

// Connect eşleştirilmiş cihazla bağlanır. Eşleştirme cmd/whatsapp-pair ile yapılır.
func (s *Sender) Connect() error {
	if s.client.Store.ID == nil {
		return ErrNotPaired
	}
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("whatsapp bağlantısı kurulamadı: %w", err)
	}
	return nil
}

func (s *Sender) Disconnect() {
	s.client.Disconnect()
}

// SendText numarayı doğrular ve metin mesajı gönderir.
func (s *Sender) SendText(ctx context.Context, phone, message string) error {
	number, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	if !s.client.IsConnected() {
		return ErrNotConnected
	}

	// Gönderimler sırayla yapılır
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.client.IsOnWhatsApp(ctx, []string{"+" + number})
	if err != nil {
		return fmt.Errorf("numara doğrulanamadı: %w", err)
	}
	if len(resp) == 0 || !resp[0].IsIn {
		return fmt.Errorf("%w: %s", ErrNotOnWhatsApp, number)
	}

	sent, err := s.client.SendMessage(ctx, resp[0].JID, &waE2E.Message{Conversation: &message})
	if err != nil {
		return fmt.Errorf("mesaj gönderilemedi: %w", err)
	}
	s.log.Info("WhatsApp mesajı gönderildi", zap.String("jid", resp[0].JID.String()), zap.String("message_id", sent.ID))
	return nil
}

func (s *Sender) handleEvent(evt interface{}) {
	switch evt.(type) {
	case *events.Connected:
		s.log.Info("WhatsApp bağlandı")
	case *events.Disconnected:
		s.log.Warn("WhatsApp bağlantısı koptu")
	case *events.LoggedOut:
		s.log.Error("WhatsApp oturumu kapatıldı, yeniden eşleştirme gerekli")
	}
}

// NormalizePhone numarayı ülke koduyla, sadece rakam olarak döner.
// Endonezya yerel biçimi desteklenir: 0812... -> 62812..., 812... -> 62812...
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	number := b.String()

	switch {
	case strings.HasPrefix(number, "620"):
		number = "62" + number[3:]
	case strings.HasPrefix(number, "0"):
		number = "62" + number[1:]
	case strings.HasPrefix(number, "8"):
		number = "62" + number
	}

	if len(number) < 10 || len(number) > 15 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return number, nil
}
