// Package sessiontoken panel oturumları için PASETO v4.local token üretir ve doğrular.
package sessiontoken

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	tokenIssuer   = "undangan.link"
	tokenAudience = "undangan-panel"

	keyHexSize = 64 // 32 byte
)

var (
	ErrMissingToken = errors.New("oturum tokenı yok")
	ErrInvalidToken = errors.New("oturum tokenı geçersiz veya süresi dolmuş")
)

// Claims token içinde taşınan kimlik bilgileri.
type Claims struct {
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	PersonalizeID string `json:"personalizeId"`
}

// IService oturum tokenı işlemleri için arayüz.
type IService interface {
	Issue(claims Claims) (string, error)
	Verify(token string) (*Claims, error)
	TTL() time.Duration
}

// Service IService arayüzünü uygular.
type Service struct {
	key paseto.V4SymmetricKey
	ttl time.Duration
}

// New hex kodlu 32 byte anahtarla yeni bir Service oluşturur.
// keyHex boşsa her açılışta rastgele anahtar üretilir (yeniden başlatmada oturumlar düşer).
func New(keyHex string, ttl time.Duration) (*Service, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if keyHex == "" {
		return &Service{key: paseto.NewV4SymmetricKey(), ttl: ttl}, nil
	}
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("SESSION_KEY tam olarak %d hex karakter olmalı, gelen: %d", keyHexSize, len(keyHex))
	}
	raw, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("SESSION_KEY hex çözülemedi: %w", err)
	}
	key, err := paseto.V4SymmetricKeyFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("PASETO anahtarı oluşturulamadı: %w", err)
	}
	return &Service{key: key, ttl: ttl}, nil
}

// Issue verilen kimlik için şifreli bir token üretir.
func (s *Service) Issue(claims Claims) (string, error) {
	if claims.UserID == "" || claims.PersonalizeID == "" {
		return "", errors.New("token için userId ve personalizeId zorunlu")
	}
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetAudience(tokenAudience)
	token.SetSubject(claims.UserID)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.ttl))

	_ = token.Set("userId", claims.UserID)
	_ = token.Set("email", claims.Email)
	_ = token.Set("personalizeId", claims.PersonalizeID)

	return token.V4Encrypt(s.key, nil), nil
}

// Verify tokenı çözer; boş, bozuk veya süresi dolmuş tokenlar için hata döner.
func (s *Service) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}

	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.key, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims Claims
	if claims.UserID, err = token.GetString("userId"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.PersonalizeID, err = token.GetString("personalizeId"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims.Email, _ = token.GetString("email")
	return &claims, nil
}

// TTL token ömrünü döner (cookie Max-Age için).
func (s *Service) TTL() time.Duration { return s.ttl }

var _ IService = (*Service)(nil)
