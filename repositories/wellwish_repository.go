package repositories

import (
	"context"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/queryparams"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IWellWishRepository ucapan veritabanı işlemleri için arayüz.
type IWellWishRepository interface {
	Create(ctx context.Context, wish *models.WellWish) error
	ListByPersonalizeID(ctx context.Context, personalizeID uuid.UUID, params queryparams.ListParams) ([]models.WellWish, int64, error)
}

// WellWishRepository IWellWishRepository arayüzünü uygular.
type WellWishRepository struct {
	db *gorm.DB
}

func NewWellWishRepository(db *gorm.DB) IWellWishRepository {
	return &WellWishRepository{db: db}
}

func (r *WellWishRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *WellWishRepository) Create(ctx context.Context, wish *models.WellWish) error {
	return translateError(r.getDB(ctx).Create(wish).Error)
}

// ListByPersonalizeID en yeni önce, sayfalı liste ve toplam sayıyı döner.
func (r *WellWishRepository) ListByPersonalizeID(ctx context.Context, personalizeID uuid.UUID, params queryparams.ListParams) ([]models.WellWish, int64, error) {
	params.Normalize()
	query := r.getDB(ctx).Model(&models.WellWish{}).Where("personalize_id = ?", personalizeID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		configslog.Log.Error("WellWishRepository.Count: DB error", zap.Error(err))
		return nil, 0, err
	}

	wishes := make([]models.WellWish, 0)
	if total == 0 {
		return wishes, 0, nil
	}
	err := query.Order("created_at DESC").Order("id DESC").
		Offset(params.CalculateOffset()).
		Limit(params.PerPage).
		Find(&wishes).Error
	if err != nil {
		configslog.Log.Error("WellWishRepository.List: DB error", zap.Error(err))
		return nil, 0, err
	}
	return wishes, total, nil
}

var _ IWellWishRepository = (*WellWishRepository)(nil)
