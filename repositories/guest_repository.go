package repositories

import (
	"context"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/invitecode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IGuestRepository davetli veritabanı işlemleri için arayüz.
type IGuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	FindByID(ctx context.Context, id, personalizeID uuid.UUID) (*models.Guest, error)
	FindByCodeAndSlug(ctx context.Context, code, slug string) (*models.Guest, error)
	ListWithRSVP(ctx context.Context, personalizeID uuid.UUID) ([]models.GuestWithRSVP, error)
	CodeExists(ctx context.Context, personalizeID uuid.UUID, code string) (bool, error)
	Update(ctx context.Context, id, personalizeID uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id, personalizeID uuid.UUID) error
}

// GuestRepository IGuestRepository arayüzünü uygular.
type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) IGuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create (personalize_id, code) çakışmasında ErrDuplicateKey döner.
func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	if guest.InvitationType == "" {
		guest.InvitationType = models.InvitationTypePersonal
	}
	return translateError(r.getDB(ctx).Omit(clause.Associations).Create(guest).Error)
}

// FindByID davetliyi sadece verilen tenant içinde arar.
func (r *GuestRepository) FindByID(ctx context.Context, id, personalizeID uuid.UUID) (*models.Guest, error) {
	var guest models.Guest
	err := r.getDB(ctx).Where("id = ? AND personalize_id = ?", id, personalizeID).First(&guest).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &guest, nil
}

// FindByCodeAndSlug davet kodu ve tenant slug'ı ile davetliyi bulur (public sayfa, RSVP, ucapan).
// Biçimi bozuk kodlar veritabanına gitmeden ErrNotFound döner.
func (r *GuestRepository) FindByCodeAndSlug(ctx context.Context, code, slug string) (*models.Guest, error) {
	if slug == "" || !invitecode.Valid(code) {
		return nil, ErrNotFound
	}
	var guest models.Guest
	err := r.getDB(ctx).Model(&models.Guest{}).
		Select("guests.*").
		Joins("JOIN personalize ON personalize.id = guests.personalize_id").
		Where("guests.code = ? AND personalize.custom_url = ?", code, slug).
		Take(&guest).Error
	if err != nil {
		err = translateError(err)
		if err != ErrNotFound {
			configslog.Log.Error("GuestRepository.FindByCodeAndSlug: DB error", zap.String("slug", slug), zap.Error(err))
		}
		return nil, err
	}
	return &guest, nil
}

// ListWithRSVP tenant'ın davetlilerini RSVP durumlarıyla, en yeni önce döner.
// RSVP'si olmayanlar status="-", people_count=0 gelir.
func (r *GuestRepository) ListWithRSVP(ctx context.Context, personalizeID uuid.UUID) ([]models.GuestWithRSVP, error) {
	rows := make([]models.GuestWithRSVP, 0)
	err := r.getDB(ctx).Table("guests").
		Select("guests.*, COALESCE(rsvp.status, ?) AS status, COALESCE(rsvp.people_count, 0) AS people_count", string(models.RSVPStatusNone)).
		Joins("LEFT JOIN rsvp ON rsvp.guest_id = guests.id").
		Where("guests.personalize_id = ?", personalizeID).
		Order("guests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.ListWithRSVP: DB error", zap.String("personalize_id", personalizeID.String()), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (r *GuestRepository) CodeExists(ctx context.Context, personalizeID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Guest{}).
		Where("personalize_id = ? AND code = ?", personalizeID, code).
		Count(&count).Error
	return count > 0, err
}

// Update sadece verilen kolonları günceller.
func (r *GuestRepository) Update(ctx context.Context, id, personalizeID uuid.UUID, fields map[string]interface{}) error {
	result := r.getDB(ctx).Model(&models.Guest{}).
		Where("id = ? AND personalize_id = ?", id, personalizeID).
		Updates(fields)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete önce RSVP'yi sonra davetliyi siler.
func (r *GuestRepository) Delete(ctx context.Context, id, personalizeID uuid.UUID) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.Where("id = ? AND personalize_id = ?", id, personalizeID).First(&guest).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("guest_id = ?", guest.ID).Delete(&models.RSVP{}).Error; err != nil {
			return err
		}
		return tx.Delete(&guest).Error
	})
}

var _ IGuestRepository = (*GuestRepository)(nil)
