// Package mediastore yüklenen görselleri saklar ve referans (URL) üzerinden siler.
package mediastore

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidName = errors.New("geçersiz dosya adı")
	ErrNotOwned    = errors.New("referans bu depoya ait değil")
)

// Store bir medya deposunun sözleşmesi. Save kalıcı bir referans döner,
// Delete aynı referansı alır ve olmayan nesne için hata vermez.
type Store interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
	Owns(ref string) bool
}
