package services

import (
	"errors"
	"fmt"
	"net/http"

	"undangan.link/pkg/validation"
)

// ErrorKind hata sınıfı; HTTP durum koduna birebir eşlenir.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnavailable
)

func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindUnavailable:
		return "Unavailable"
	default:
		return "Internal"
	}
}

// ServiceError kullanıcıya gösterilecek mesajı ve sınıfını taşır.
// Aynı değere sahip hatalar errors.Is ile eşleşir.
type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func newError(kind ErrorKind, msg string) *ServiceError {
	return &ServiceError{Kind: kind, Message: msg}
}

// --- Servis Hataları ---

var (
	ErrInvalidInput       = newError(KindBadRequest, "Data tidak lengkap atau tidak valid")
	ErrUnauthorized       = newError(KindUnauthorized, "Unauthorized")
	ErrForbidden          = newError(KindForbidden, "Forbidden")
	ErrInvalidCredentials = newError(KindUnauthorized, "Email atau kata sandi salah.")
	ErrEmailTaken         = newError(KindConflict, "Email sudah terdaftar.")
	ErrWrongPassword      = newError(KindBadRequest, "Kata sandi saat ini salah.")

	ErrPersonalizeNotFound = newError(KindNotFound, "Data personalisasi tidak ditemukan.")
	ErrCustomURLTaken      = newError(KindConflict, "Custom URL already used")

	ErrGuestNotFound      = newError(KindNotFound, "Tamu tidak ditemukan.")
	ErrTenantNotFound     = newError(KindNotFound, "Undangan tidak ditemukan.")
	ErrInvitationNotFound = newError(KindNotFound, "Kode undangan atau URL tidak ditemukan.")
	ErrInvalidRSVPStatus  = newError(KindBadRequest, "Status RSVP tidak valid. Hanya 'hadir' atau 'tidak hadir' yang diperbolehkan.")
	ErrSenderUnavailable  = newError(KindUnavailable, "Pengiriman WhatsApp tidak aktif.")
	ErrRSVPIncomplete     = newError(KindBadRequest, "Data RSVP tidak lengkap (URL, kode undangan, atau status).")
	ErrWellWishIncomplete = newError(KindBadRequest, "Nama, pesan ucapan, kode undangan, dan URL harus diisi.")

	ErrInternal = newError(KindInternal, "Terjadi kesalahan pada server.")
)

// invalidf ErrInvalidInput'u detay mesajıyla sarar.
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// KindOf hatanın sınıfını bulur. Bilinmeyen hatalar Internal sayılır.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	var ve *validation.Error
	if errors.As(err, &ve) {
		return KindBadRequest
	}
	return KindInternal
}

// PublicMessage kullanıcıya dönülecek mesaj. Internal hatalarda detay sızdırılmaz.
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindInternal:
		return ErrInternal.Message
	default:
		return err.Error()
	}
}
