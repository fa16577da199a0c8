package services

import (
	"context"
	"errors"
	"strings"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/repositories"

	"go.uber.org/zap"
)

// RSVPInput POST /api/rsvp gövdesi.
type RSVPInput struct {
	CustomURLSlug string `json:"customUrlSlug"`
	InviteCode    string `json:"inviteCode"`
	Status        string `json:"status"`
	PeopleCount   *int   `json:"people_count"`
}

// IRSVPService davetlinin katılım yanıtı için arayüz.
type IRSVPService interface {
	SubmitRSVP(ctx context.Context, input RSVPInput) (*models.RSVP, error)
}

// RSVPService IRSVPService arayüzünü uygular.
type RSVPService struct {
	guestRepo repositories.IGuestRepository
	rsvpRepo  repositories.IRSVPRepository
}

func NewRSVPService(guestRepo repositories.IGuestRepository, rsvpRepo repositories.IRSVPRepository) IRSVPService {
	return &RSVPService{guestRepo: guestRepo, rsvpRepo: rsvpRepo}
}

// NormalizeHeadcount "tidak hadir" için 0, "hadir" için en az 1 döner.
func NormalizeHeadcount(status models.RSVPStatus, count *int) int {
	if status != models.RSVPStatusAttending {
		return 0
	}
	if count == nil || *count < 1 {
		return 1
	}
	return *count
}

// parseRSVPStatus yalnızca "hadir" ve "tidak hadir" değerlerini birebir kabul eder.
func parseRSVPStatus(raw string) (models.RSVPStatus, error) {
	switch status := models.RSVPStatus(raw); status {
	case models.RSVPStatusAttending, models.RSVPStatusNotAttending:
		return status, nil
	default:
		return "", ErrInvalidRSVPStatus
	}
}

// SubmitRSVP davetliyi slug+kod ile bulur ve yanıtını tek satır olarak yazar (son yazan kazanır).
func (s *RSVPService) SubmitRSVP(ctx context.Context, input RSVPInput) (*models.RSVP, error) {
	slug := normalizeSlug(input.CustomURLSlug)
	code := strings.TrimSpace(input.InviteCode)
	if slug == "" || code == "" || strings.TrimSpace(input.Status) == "" {
		return nil, ErrRSVPIncomplete
	}
	status, err := parseRSVPStatus(input.Status)
	if err != nil {
		return nil, err
	}

	guest, err := s.guestRepo.FindByCodeAndSlug(ctx, code, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	rsvp := &models.RSVP{
		GuestID:     guest.ID,
		Status:      status,
		PeopleCount: NormalizeHeadcount(status, input.PeopleCount),
	}
	if err := s.rsvpRepo.Upsert(ctx, rsvp); err != nil {
		configslog.Log.Error("RSVP kaydedilemedi", zap.String("guest_id", guest.ID.String()), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("RSVP alındı: %s -> %s (%d kişi)", guest.Code, rsvp.Status, rsvp.PeopleCount)
	return rsvp, nil
}

var _ IRSVPService = (*RSVPService)(nil)
