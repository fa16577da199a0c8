package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/validation"
	"undangan.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// /api altındaki sabit yollarla çakışan slug'lar
	reservedSlugs = map[string]struct{}{
		"api": {}, "auth": {}, "guests": {}, "personalize": {}, "rsvp": {},
		"settings": {}, "static": {}, "ucapan": {}, "uploads": {},
	}

	eventTimeLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
)

// PersonalizeInput PUT /api/personalize gövdesi. Kısmi güncelleme yoktur; her alan her seferinde gönderilir.
type PersonalizeInput struct {
	PersonalizeID string `json:"personalizeId" validate:"required"`

	GroomName    string `json:"groomName" validate:"max=255"`
	GroomIG      string `json:"groomIg" validate:"max=255"`
	BrideName    string `json:"brideName" validate:"max=255"`
	BrideIG      string `json:"brideIg" validate:"max=255"`
	GroomParents string `json:"groomParents"`
	BrideParents string `json:"brideParents"`

	AkadLocation    string `json:"akadLocation"`
	AkadMap         string `json:"akadMap"`
	AkadDateTime    string `json:"akadDateTime"`
	ResepsiLocation string `json:"resepsiLocation"`
	ResepsiMap      string `json:"resepsiMap"`
	ResepsiDateTime string `json:"resepsiDateTime"`

	WebsiteTitle string `json:"websiteTitle" validate:"max=255"`
	CustomURL    string `json:"customUrl" validate:"max=100"`

	CoverImage    string   `json:"coverImage"`
	HeroImage     string   `json:"heroImage"`
	GroomImage    string   `json:"groomImage"`
	BrideImage    string   `json:"brideImage"`
	GalleryImages []string `json:"galleryImages"`

	Bank1Name          string `json:"bank1Name" validate:"max=100"`
	Bank1AccountName   string `json:"bank1AccountName" validate:"max=255"`
	Bank1AccountNumber string `json:"bank1AccountNumber" validate:"max=100"`
	Bank2Name          string `json:"bank2Name" validate:"max=100"`
	Bank2AccountName   string `json:"bank2AccountName" validate:"max=255"`
	Bank2AccountNumber string `json:"bank2AccountNumber" validate:"max=100"`
}

// IPersonalizeService tenant kaydı okuma/güncelleme işlemleri için arayüz.
type IPersonalizeService interface {
	GetPersonalize(ctx context.Context, tenantID uuid.UUID, requestedID string) (*models.Personalize, error)
	UpdatePersonalize(ctx context.Context, tenantID uuid.UUID, input PersonalizeInput) (*models.Personalize, error)
}

// PersonalizeService IPersonalizeService arayüzünü uygular.
type PersonalizeService struct {
	repo      repositories.IPersonalizeRepository
	cleaner   IMediaCleaner
	validator *validation.Validator
	loc       *time.Location // Saat dilimi içermeyen tarihler için
}

func NewPersonalizeService(
	repo repositories.IPersonalizeRepository,
	cleaner IMediaCleaner,
	validator *validation.Validator,
	loc *time.Location,
) IPersonalizeService {
	if loc == nil {
		loc = time.UTC
	}
	return &PersonalizeService{repo: repo, cleaner: cleaner, validator: validator, loc: loc}
}

// --- Yardımcı Metodlar ---

// authorizeTenant istekteki tenant id'nin token'daki ile aynı olduğunu doğrular.
func authorizeTenant(tenantID uuid.UUID, payloadID string) error {
	if strings.TrimSpace(payloadID) == "" {
		return invalidf("personalize id wajib diisi")
	}
	id, err := uuid.Parse(strings.TrimSpace(payloadID))
	if err != nil || id != tenantID {
		return ErrForbidden
	}
	return nil
}

func normalizeSlug(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validateSlug(slug string) error {
	if slug == "" {
		return nil
	}
	if !slugPattern.MatchString(slug) {
		return invalidf("custom URL hanya boleh berisi huruf kecil, angka, dan tanda hubung")
	}
	if _, reserved := reservedSlugs[slug]; reserved {
		return ErrCustomURLTaken
	}
	return nil
}

func (s *PersonalizeService) parseEventTime(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, s.loc); err == nil {
			return &t, nil
		}
	}
	return nil, invalidf("format %s tidak valid", field)
}

// buildRecord mevcut kaydın kimlik alanlarını koruyarak girdiden yeni durumu üretir.
func (s *PersonalizeService) buildRecord(current *models.Personalize, input PersonalizeInput) (*models.Personalize, error) {
	akad, err := s.parseEventTime("akadDateTime", input.AkadDateTime)
	if err != nil {
		return nil, err
	}
	resepsi, err := s.parseEventTime("resepsiDateTime", input.ResepsiDateTime)
	if err != nil {
		return nil, err
	}

	var customURL *string
	if slug := normalizeSlug(input.CustomURL); slug != "" {
		customURL = &slug
	}

	gallery := make(datatypes.JSONSlice[string], 0, len(input.GalleryImages))
	for _, ref := range input.GalleryImages {
		if ref = strings.TrimSpace(ref); ref != "" {
			gallery = append(gallery, ref)
		}
	}

	return &models.Personalize{
		BaseModel:          models.BaseModel{ID: current.ID, CreatedAt: current.CreatedAt},
		UserID:             current.UserID,
		GroomName:          input.GroomName,
		GroomIG:            input.GroomIG,
		BrideName:          input.BrideName,
		BrideIG:            input.BrideIG,
		GroomParents:       input.GroomParents,
		BrideParents:       input.BrideParents,
		AkadLocation:       input.AkadLocation,
		AkadMap:            input.AkadMap,
		AkadDateTime:       akad,
		ResepsiLocation:    input.ResepsiLocation,
		ResepsiMap:         input.ResepsiMap,
		ResepsiDateTime:    resepsi,
		WebsiteTitle:       input.WebsiteTitle,
		CustomURL:          customURL,
		Bank1Name:          input.Bank1Name,
		Bank1AccountName:   input.Bank1AccountName,
		Bank1AccountNumber: input.Bank1AccountNumber,
		Bank2Name:          input.Bank2Name,
		Bank2AccountName:   input.Bank2AccountName,
		Bank2AccountNumber: input.Bank2AccountNumber,
		CoverImageURL:      strings.TrimSpace(input.CoverImage),
		HeroImageURL:       strings.TrimSpace(input.HeroImage),
		GroomImageURL:      strings.TrimSpace(input.GroomImage),
		BrideImageURL:      strings.TrimSpace(input.BrideImage),
		GalleryImageURLs:   gallery,
	}, nil
}

// OrphanedRefs eski kayıtta olup yeni kaydın hiçbir görsel alanında (tekil alanlar
// veya galeri) geçmeyen referansları, ilk görülme sırasıyla ve tekrarsız döner.
func OrphanedRefs(old, next *models.Personalize) []string {
	keep := make(map[string]struct{})
	for _, ref := range append(next.ImageRefs(), next.Gallery()...) {
		if ref != "" {
			keep[ref] = struct{}{}
		}
	}

	orphans := make([]string, 0)
	seen := make(map[string]struct{})
	for _, ref := range append(old.ImageRefs(), old.Gallery()...) {
		if ref == "" {
			continue
		}
		if _, kept := keep[ref]; kept {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		orphans = append(orphans, ref)
	}
	return orphans
}

// --- Servis Metodları ---

// GetPersonalize tenant'ın kaydını döner; istenen id token'daki tenant değilse Forbidden.
func (s *PersonalizeService) GetPersonalize(ctx context.Context, tenantID uuid.UUID, requestedID string) (*models.Personalize, error) {
	if err := authorizeTenant(tenantID, requestedID); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPersonalizeNotFound
		}
		return nil, err
	}
	p.GalleryImageURLs = p.Gallery()
	return p, nil
}

// UpdatePersonalize kaydı tamamen yeni durumla değiştirir ve artık referans edilmeyen
// medyayı temizleme kuyruğuna verir. Silmeler sadece yazma başarılı olduktan sonra
// istenir; yazma başarısızsa hiçbir medya silinmez.
func (s *PersonalizeService) UpdatePersonalize(ctx context.Context, tenantID uuid.UUID, input PersonalizeInput) (*models.Personalize, error) {
	// 1. Yetki ve validasyon
	if err := authorizeTenant(tenantID, input.PersonalizeID); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	slug := normalizeSlug(input.CustomURL)
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	// 2. Mevcut durum
	current, err := s.repo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPersonalizeNotFound
		}
		return nil, err
	}

	// 3. Slug çakışması (değiştiyse)
	if slug != "" && slug != current.Slug() {
		taken, err := s.repo.SlugTakenByOther(ctx, slug, tenantID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrCustomURLTaken
		}
	}

	// 4. Yeni durum ve yetim referanslar
	next, err := s.buildRecord(current, input)
	if err != nil {
		return nil, err
	}
	orphans := OrphanedRefs(current, next)

	// 5. Tek ifadeyle yaz
	if err := s.repo.Replace(ctx, next); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrCustomURLTaken // Kontrol ile yazma arasında yarış
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrPersonalizeNotFound
		default:
			configslog.Log.Error("Kişiselleştirme kaydı yazılamadı", zap.String("personalize_id", tenantID.String()), zap.Error(err))
			return nil, fmt.Errorf("kişiselleştirme güncellenemedi: %w", err)
		}
	}

	// 6. Temizlik (best effort); başka tenant'ın hâlâ kullandığı dosya silinmez
	orphans = s.unsharedRefs(ctx, tenantID, orphans)
	if len(orphans) > 0 {
		configslog.Log.Info("Kullanılmayan medya temizleniyor",
			zap.String("personalize_id", tenantID.String()),
			zap.Strings("refs", orphans),
		)
		s.cleaner.Enqueue(orphans...)
	}

	configslog.SLog.Infof("Kişiselleştirme güncellendi: %s", tenantID)
	return next, nil
}

// unsharedRefs başka bir personalize kaydında geçmeyen referansları döner.
// Sorgu hatasında referans tutulur.
func (s *PersonalizeService) unsharedRefs(ctx context.Context, tenantID uuid.UUID, refs []string) []string {
	out := refs[:0]
	for _, ref := range refs {
		inUse, err := s.repo.RefInUseByOther(ctx, ref, tenantID)
		if err != nil {
			configslog.Log.Warn("Medya referansı kontrol edilemedi, dosya tutuluyor", zap.String("ref", ref), zap.Error(err))
			continue
		}
		if inUse {
			configslog.Log.Info("Medya başka bir tenant tarafından kullanılıyor, silinmedi",
				zap.String("personalize_id", tenantID.String()),
				zap.String("ref", ref),
			)
			continue
		}
		out = append(out, ref)
	}
	return out
}

var _ IPersonalizeService = (*PersonalizeService)(nil)
