package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/invitecode"
	"undangan.link/pkg/validation"
	"undangan.link/pkg/whatsapp"
	"undangan.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCodeAttempts = 5

// CreateGuestInput POST /api/guests gövdesi.
type CreateGuestInput struct {
	PersonalizeID  string `json:"personalize_id" validate:"required"`
	Name           string `json:"name" validate:"required,max=255"`
	Phone          string `json:"phone" validate:"max=50"`
	Address        string `json:"address"`
	InvitationType string `json:"invitation_type" validate:"omitempty,oneof=personal group"`
}

// UpdateGuestInput PATCH /api/guests gövdesi. nil alanlar değişmez.
type UpdateGuestInput struct {
	ID             string  `json:"id" validate:"required"`
	PersonalizeID  string  `json:"personalize_id" validate:"required"`
	Name           *string `json:"name" validate:"omitempty,min=1,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=50"`
	Address        *string `json:"address"`
	InvitationType *string `json:"invitation_type" validate:"omitempty,oneof=personal group"`
	IsSent         *bool   `json:"is_sent"`
}

// GuestRefInput DELETE ve gönderim için davetli referansı.
type GuestRefInput struct {
	ID            string `json:"id" validate:"required"`
	PersonalizeID string `json:"personalize_id" validate:"required"`
}

// IInvitationSender davetiye linkini davetliye ileten kanal (WhatsApp).
type IInvitationSender interface {
	SendText(ctx context.Context, phone, message string) error
}

// IGuestService davetli yönetimi için arayüz.
type IGuestService interface {
	ListGuests(ctx context.Context, tenantID uuid.UUID, personalizeID string) ([]models.GuestWithRSVP, error)
	CreateGuest(ctx context.Context, tenantID uuid.UUID, input CreateGuestInput) (*models.Guest, error)
	UpdateGuest(ctx context.Context, tenantID uuid.UUID, input UpdateGuestInput) (*models.Guest, error)
	DeleteGuest(ctx context.Context, tenantID uuid.UUID, input GuestRefInput) error
	SendInvitation(ctx context.Context, tenantID uuid.UUID, input GuestRefInput) (*models.Guest, error)
}

// GuestService IGuestService arayüzünü uygular.
type GuestService struct {
	repo            repositories.IGuestRepository
	personalizeRepo repositories.IPersonalizeRepository
	validator       *validation.Validator
	sender          IInvitationSender // nil ise gönderim kapalı
	publicBaseURL   string
	messageTemplate string
}

func NewGuestService(
	repo repositories.IGuestRepository,
	personalizeRepo repositories.IPersonalizeRepository,
	validator *validation.Validator,
	sender IInvitationSender,
	publicBaseURL, messageTemplate string,
) IGuestService {
	return &GuestService{
		repo:            repo,
		personalizeRepo: personalizeRepo,
		validator:       validator,
		sender:          sender,
		publicBaseURL:   strings.TrimRight(publicBaseURL, "/"),
		messageTemplate: messageTemplate,
	}
}

func parseGuestID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, invalidf("id tamu tidak valid")
	}
	return id, nil
}

func (s *GuestService) ListGuests(ctx context.Context, tenantID uuid.UUID, personalizeID string) ([]models.GuestWithRSVP, error) {
	if err := authorizeTenant(tenantID, personalizeID); err != nil {
		return nil, err
	}
	return s.repo.ListWithRSVP(ctx, tenantID)
}

// CreateGuest tenant içinde benzersiz bir davet koduyla davetli oluşturur.
// Kod çakışırsa yeni kodla tekrar denenir.
func (s *GuestService) CreateGuest(ctx context.Context, tenantID uuid.UUID, input CreateGuestInput) (*models.Guest, error) {
	if err := authorizeTenant(tenantID, input.PersonalizeID); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	invitationType := models.InvitationTypePersonal
	if input.InvitationType != "" {
		invitationType = models.InvitationType(input.InvitationType)
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := invitecode.Generate()
		if err != nil {
			return nil, err
		}
		if exists, err := s.repo.CodeExists(ctx, tenantID, code); err != nil {
			return nil, err
		} else if exists {
			continue
		}
		guest := &models.Guest{
			PersonalizeID:  tenantID,
			Name:           input.Name,
			Phone:          strings.TrimSpace(input.Phone),
			Address:        input.Address,
			InvitationType: invitationType,
			Code:           code,
		}
		err = s.repo.Create(ctx, guest)
		if err == nil {
			configslog.SLog.Infof("Davetli eklendi: %s (%s)", guest.Name, guest.Code)
			return guest, nil
		}
		if !errors.Is(err, repositories.ErrDuplicateKey) {
			configslog.Log.Error("Davetli oluşturulamadı", zap.String("personalize_id", tenantID.String()), zap.Error(err))
			return nil, err
		}
		configslog.SLog.Warnf("Davet kodu çakıştı (%s), tekrar deneniyor (%d/%d)", code, attempt, maxCodeAttempts)
	}
	return nil, fmt.Errorf("benzersiz davet kodu üretilemedi")
}

// UpdateGuest sadece gönderilen alanları günceller.
func (s *GuestService) UpdateGuest(ctx context.Context, tenantID uuid.UUID, input UpdateGuestInput) (*models.Guest, error) {
	if err := authorizeTenant(tenantID, input.PersonalizeID); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	id, err := parseGuestID(input.ID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalidf("nama tamu wajib diisi")
		}
		fields["name"] = name
	}
	if input.Phone != nil {
		fields["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if input.InvitationType != nil {
		fields["invitation_type"] = *input.InvitationType
	}
	if input.IsSent != nil {
		fields["is_sent"] = *input.IsSent
	}
	if len(fields) == 0 {
		return nil, invalidf("tidak ada data yang diubah")
	}

	if err := s.repo.Update(ctx, id, tenantID, fields); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return s.repo.FindByID(ctx, id, tenantID)
}

// DeleteGuest davetliyi ve RSVP'sini siler.
func (s *GuestService) DeleteGuest(ctx context.Context, tenantID uuid.UUID, input GuestRefInput) error {
	if err := authorizeTenant(tenantID, input.PersonalizeID); err != nil {
		return err
	}
	id, err := parseGuestID(input.ID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, tenantID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGuestNotFound
		}
		return err
	}
	configslog.SLog.Infof("Davetli silindi: %s", id)
	return nil
}

// InvitationLink davetlinin kişisel davetiye adresi.
func (s *GuestService) InvitationLink(slug, code string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, slug, code)
}

// SendInvitation davetiye linkini WhatsApp ile gönderir ve davetliyi gönderildi olarak işaretler.
func (s *GuestService) SendInvitation(ctx context.Context, tenantID uuid.UUID, input GuestRefInput) (*models.Guest, error) {
	if err := authorizeTenant(tenantID, input.PersonalizeID); err != nil {
		return nil, err
	}
	if s.sender == nil {
		return nil, ErrSenderUnavailable
	}
	id, err := parseGuestID(input.ID)
	if err != nil {
		return nil, err
	}

	guest, err := s.repo.FindByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if guest.Phone == "" {
		return nil, invalidf("nomor telepon tamu belum diisi")
	}

	personalize, err := s.personalizeRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPersonalizeNotFound
		}
		return nil, err
	}
	if personalize.Slug() == "" {
		return nil, invalidf("custom URL belum diatur")
	}

	message := fmt.Sprintf(s.messageTemplate, guest.Name, s.InvitationLink(personalize.Slug(), guest.Code))
	if err := s.sender.SendText(ctx, guest.Phone, message); err != nil {
		switch {
		case errors.Is(err, whatsapp.ErrInvalidPhone), errors.Is(err, whatsapp.ErrNotOnWhatsApp):
			return nil, newError(KindBadRequest, "Nomor telepon tidak terdaftar di WhatsApp.")
		case errors.Is(err, whatsapp.ErrNotConnected), errors.Is(err, whatsapp.ErrNotPaired):
			return nil, ErrSenderUnavailable
		default:
			configslog.Log.Error("Davetiye gönderilemedi", zap.String("guest_id", guest.ID.String()), zap.Error(err))
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, guest.ID, tenantID, map[string]interface{}{"is_sent": true}); err != nil {
		return nil, err
	}
	guest.IsSent = true
	return guest, nil
}

var _ IGuestService = (*GuestService)(nil)
