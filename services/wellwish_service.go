package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/queryparams"
	"undangan.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxWellWishNameLen    = 255
	maxWellWishMessageLen = 2000
)

// WellWishInput POST /api/ucapan gövdesi.
type WellWishInput struct {
	CustomURLSlug string `json:"customUrlSlug"`
	InviteCode    string `json:"inviteCode"`
	Name          string `json:"name"`
	Message       string `json:"message"`
}

// IWellWishService ucapan (tebrik mesajı) işlemleri için arayüz.
type IWellWishService interface {
	SubmitWellWish(ctx context.Context, input WellWishInput) (*models.WellWish, error)
	ListWellWishes(ctx context.Context, personalizeID string, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// WellWishService IWellWishService arayüzünü uygular.
type WellWishService struct {
	guestRepo repositories.IGuestRepository
	repo      repositories.IWellWishRepository
}

func NewWellWishService(guestRepo repositories.IGuestRepository, repo repositories.IWellWishRepository) IWellWishService {
	return &WellWishService{guestRepo: guestRepo, repo: repo}
}

// SubmitWellWish mesajı davetliyle ilişkilendirip ekler. Bir davetli birden çok mesaj bırakabilir.
func (s *WellWishService) SubmitWellWish(ctx context.Context, input WellWishInput) (*models.WellWish, error) {
	slug := normalizeSlug(input.CustomURLSlug)
	code := strings.TrimSpace(input.InviteCode)
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)
	if slug == "" || code == "" || name == "" || message == "" {
		return nil, ErrWellWishIncomplete
	}
	if utf8.RuneCountInString(name) > maxWellWishNameLen || utf8.RuneCountInString(message) > maxWellWishMessageLen {
		return nil, invalidf("nama atau pesan terlalu panjang")
	}

	guest, err := s.guestRepo.FindByCodeAndSlug(ctx, code, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	guestID := guest.ID
	wish := &models.WellWish{
		PersonalizeID: guest.PersonalizeID,
		GuestID:       &guestID,
		Name:          name,
		Message:       message,
	}
	if err := s.repo.Create(ctx, wish); err != nil {
		configslog.Log.Error("Ucapan kaydedilemedi", zap.String("guest_id", guest.ID.String()), zap.Error(err))
		return nil, err
	}
	return wish, nil
}

// ListWellWishes tenant'ın mesajlarını en yeni önce, sayfalı döner.
func (s *WellWishService) ListWellWishes(ctx context.Context, personalizeID string, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	id, err := uuid.Parse(strings.TrimSpace(personalizeID))
	if err != nil {
		return nil, ErrPersonalizeNotFound
	}
	params.Normalize()

	wishes, total, err := s.repo.ListByPersonalizeID(ctx, id, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(wishes, total, params), nil
}

var _ IWellWishService = (*WellWishService)(nil)
