package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"undangan.link/models"
	"undangan.link/repositories"

	"github.com/google/uuid"
)

// InvitationGuest davetiye sayfasında gösterilen davetli bilgisi.
type InvitationGuest struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	InviteCode     string                `json:"invite_code"`
	Address        string                `json:"address"`
	InvitationType models.InvitationType `json:"invitation_type"`
}

// InvitationView GET /api/:customUrl/:inviteCode yanıtı; bir davetliye özel davetiye.
type InvitationView struct {
	PersonalizeID uuid.UUID `json:"personalize_id"`

	GroomName    string `json:"groom_name"`
	GroomIG      string `json:"groom_ig"`
	BrideName    string `json:"bride_name"`
	BrideIG      string `json:"bride_ig"`
	GroomParents string `json:"groom_parents"`
	BrideParents string `json:"bride_parents"`

	AkadLocation    string     `json:"akad_location"`
	AkadMap         string     `json:"akad_map"`
	AkadDateTime    *time.Time `json:"akad_datetime"`
	ResepsiLocation string     `json:"resepsi_location"`
	ResepsiMap      string     `json:"resepsi_map"`
	ResepsiDateTime *time.Time `json:"resepsi_datetime"`

	WebsiteTitle string `json:"website_title"`
	CustomURL    string `json:"custom_url"`

	Bank1Name          string `json:"bank1_name"`
	Bank1AccountName   string `json:"bank1_account_name"`
	Bank1AccountNumber string `json:"bank1_account_number"`
	Bank2Name          string `json:"bank2_name"`
	Bank2AccountName   string `json:"bank2_account_name"`
	Bank2AccountNumber string `json:"bank2_account_number"`

	CoverImage    string   `json:"coverImage"`
	HeroImage     string   `json:"heroImage"`
	GroomImage    string   `json:"groomImage"`
	BrideImage    string   `json:"brideImage"`
	GalleryImages []string `json:"galleryImages"`

	Guest InvitationGuest `json:"guest"`
}

// IInvitationService public davetiye görüntüleme için arayüz.
type IInvitationService interface {
	GetInvitation(ctx context.Context, slug, inviteCode string) (*InvitationView, error)
}

// InvitationService IInvitationService arayüzünü uygular.
type InvitationService struct {
	personalizeRepo repositories.IPersonalizeRepository
	guestRepo       repositories.IGuestRepository
}

func NewInvitationService(personalizeRepo repositories.IPersonalizeRepository, guestRepo repositories.IGuestRepository) IInvitationService {
	return &InvitationService{personalizeRepo: personalizeRepo, guestRepo: guestRepo}
}

// GetInvitation önce tenant'ı slug ile, sonra davetliyi kod ile bulur.
func (s *InvitationService) GetInvitation(ctx context.Context, slug, inviteCode string) (*InvitationView, error) {
	slug = normalizeSlug(slug)
	inviteCode = strings.TrimSpace(inviteCode)
	if slug == "" || inviteCode == "" {
		return nil, invalidf("URL tidak lengkap")
	}

	p, err := s.personalizeRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	guest, err := s.guestRepo.FindByCodeAndSlug(ctx, inviteCode, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}

	return newInvitationView(p, guest), nil
}

func newInvitationView(p *models.Personalize, g *models.Guest) *InvitationView {
	return &InvitationView{
		PersonalizeID:      p.ID,
		GroomName:          p.GroomName,
		GroomIG:            p.GroomIG,
		BrideName:          p.BrideName,
		BrideIG:            p.BrideIG,
		GroomParents:       p.GroomParents,
		BrideParents:       p.BrideParents,
		AkadLocation:       p.AkadLocation,
		AkadMap:            p.AkadMap,
		AkadDateTime:       p.AkadDateTime,
		ResepsiLocation:    p.ResepsiLocation,
		ResepsiMap:         p.ResepsiMap,
		ResepsiDateTime:    p.ResepsiDateTime,
		WebsiteTitle:       p.WebsiteTitle,
		CustomURL:          p.Slug(),
		Bank1Name:          p.Bank1Name,
		Bank1AccountName:   p.Bank1AccountName,
		Bank1AccountNumber: p.Bank1AccountNumber,
		Bank2Name:          p.Bank2Name,
		Bank2AccountName:   p.Bank2AccountName,
		Bank2AccountNumber: p.Bank2AccountNumber,
		CoverImage:         p.CoverImageURL,
		HeroImage:          p.HeroImageURL,
		GroomImage:         p.GroomImageURL,
		BrideImage:         p.BrideImageURL,
		GalleryImages:      p.Gallery(),
		Guest: InvitationGuest{
			ID:             g.ID,
			Name:           g.Name,
			InviteCode:     g.Code,
			Address:        g.Address,
			InvitationType: g.InvitationType,
		},
	}
}

var _ IInvitationService = (*InvitationService)(nil)
