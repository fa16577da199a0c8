package mediastore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const nameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// LocalStore dosyaları yerel bir dizine yazar, referans olarak urlPrefix+ad döner.
type LocalStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

// NewLocalStore dizini oluşturur ve yeni bir LocalStore döner.
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload dizini oluşturulamadı: %w", err)
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix, now: time.Now}, nil
}

// Save içeriği <unix-millis>-<rastgele><uzantı> adıyla kaydeder.
// Uzantı orijinal addan alınır, yoksa içerikten tespit edilir.
func (s *LocalStore) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	br := bufio.NewReaderSize(r, 3072)
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		head, _ := br.Peek(3072)
		ext = mimetype.Detect(head).Extension()
	}

	suffix, err := gonanoid.Generate(nameAlphabet, 10)
	if err != nil {
		return "", fmt.Errorf("dosya adı üretilemedi: %w", err)
	}
	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), suffix, ext)

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("dosya oluşturulamadı: %w", err)
	}
	if _, err := io.Copy(f, br); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("dosya yazılamadı: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("dosya kapatılamadı: %w", err)
	}
	return s.urlPrefix + name, nil
}

// Delete referansın işaret ettiği dosyayı siler. Dosya zaten yoksa nil döner.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	if !s.Owns(ref) {
		return ErrNotOwned
	}
	path, err := s.Path(strings.TrimPrefix(ref, s.urlPrefix))
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("dosya silinemedi: %w", err)
	}
	return nil
}

// Owns referans bu deponun URL önekiyle başlıyorsa true.
func (s *LocalStore) Owns(ref string) bool {
	return ref != "" && strings.HasPrefix(ref, s.urlPrefix)
}

// Path dosya adını disk yoluna çevirir; dizin dışına çıkan adları reddeder.
func (s *LocalStore) Path(name string) (string, error) {
	if name == "" || name == "." || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name), nil
}

// Dir depolama dizini.
func (s *LocalStore) Dir() string { return s.dir }

var _ Store = (*LocalStore)(nil)
