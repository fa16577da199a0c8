package repositories

import (
	"context"
	"encoding/json"
	"strings"

	"undangan.link/configs/configslog"
	"undangan.link/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IPersonalizeRepository tenant kaydı (personalize) işlemleri için arayüz.
type IPersonalizeRepository interface {
	Create(ctx context.Context, p *models.Personalize) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Personalize, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Personalize, error)
	FindBySlug(ctx context.Context, slug string) (*models.Personalize, error)
	SlugTakenByOther(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error)
	RefInUseByOther(ctx context.Context, ref string, exceptID uuid.UUID) (bool, error)
	Replace(ctx context.Context, p *models.Personalize) error
}

// PersonalizeRepository IPersonalizeRepository arayüzünü uygular.
type PersonalizeRepository struct {
	db *gorm.DB
}

func NewPersonalizeRepository(db *gorm.DB) IPersonalizeRepository {
	return &PersonalizeRepository{db: db}
}

func (r *PersonalizeRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *PersonalizeRepository) Create(ctx context.Context, p *models.Personalize) error {
	if p.GalleryImageURLs == nil {
		p.GalleryImageURLs = []string{}
	}
	return translateError(r.getDB(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *PersonalizeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Personalize, error) {
	var p models.Personalize
	if err := r.getDB(ctx).First(&p, "id = ?", id).Error; err != nil {
		err = translateError(err)
		if err != ErrNotFound {
			configslog.Log.Error("PersonalizeRepository.FindByID: DB error", zap.String("id", id.String()), zap.Error(err))
		}
		return nil, err
	}
	return &p, nil
}

func (r *PersonalizeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Personalize, error) {
	var p models.Personalize
	if err := r.getDB(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

func (r *PersonalizeRepository) FindBySlug(ctx context.Context, slug string) (*models.Personalize, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	var p models.Personalize
	if err := r.getDB(ctx).Where("custom_url = ?", slug).First(&p).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// SlugTakenByOther slug'ın başka bir tenant tarafından kullanılıp kullanılmadığını döner.
func (r *PersonalizeRepository) SlugTakenByOther(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Personalize{}).
		Where("custom_url = ? AND id <> ?", slug, exceptID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// RefInUseByOther medya referansının başka bir tenant kaydında (görsel kolonları veya galeri) geçip geçmediğini döner.
func (r *PersonalizeRepository) RefInUseByOther(ctx context.Context, ref string, exceptID uuid.UUID) (bool, error) {
	if ref == "" {
		return false, nil
	}
	db := r.getDB(ctx)
	galleryCond, galleryArg := "gallery_image_urls @> CAST(? AS jsonb)", interface{}(galleryJSON(ref))
	if db.Dialector.Name() != "postgres" {
		// JSON metin olarak saklanır; öğe tırnaklarıyla aranır
		encoded, _ := json.Marshal(ref)
		galleryCond, galleryArg = `CAST(gallery_image_urls AS TEXT) LIKE ? ESCAPE '\'`, "%"+escapeLike(string(encoded))+"%"
	}

	var count int64
	err := db.Model(&models.Personalize{}).
		Where("id <> ?", exceptID).
		Where(db.Session(&gorm.Session{NewDB: true}).
			Where("cover_image_url = ?", ref).
			Or("hero_image_url = ?", ref).
			Or("groom_image_url = ?", ref).
			Or("bride_image_url = ?", ref).
			Or(galleryCond, galleryArg)).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("PersonalizeRepository.RefInUseByOther: DB error", zap.String("ref", ref), zap.Error(err))
		return false, translateError(err)
	}
	return count > 0, nil
}

func galleryJSON(ref string) string {
	b, _ := json.Marshal([]string{ref})
	return string(b)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Replace kaydın tüm alanlarını tek bir UPDATE ile yazar (id, user_id, created_at hariç).
// Slug çakışması ErrDuplicateKey, olmayan kayıt ErrNotFound döner.
func (r *PersonalizeRepository) Replace(ctx context.Context, p *models.Personalize) error {
	if p.GalleryImageURLs == nil {
		p.GalleryImageURLs = []string{}
	}
	if p.ID == uuid.Nil {
		return ErrNotFound
	}
	result := r.getDB(ctx).Model(p).
		Select("*").
		Omit("id", "user_id", "created_at", clause.Associations).
		Updates(p)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IPersonalizeRepository = (*PersonalizeRepository)(nil)
