package seeders

import (
	"errors"
	"time"

	"undangan.link/configs/configslog"
	"undangan.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DemoEmail      = "demo@undangan.link"
	DemoPassword   = "rahasia123"
	DemoSlug       = "dilan-milea"
	DemoInviteCode = "INV-AB12CD34"
)

// SeedDemoTenant örnek bir çift, sitesi ve bir davetli oluşturur. Varsa dokunmaz.
func SeedDemoTenant(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", DemoEmail).First(&existing).Error
	if err == nil {
		configslog.SLog.Debugf("Demo kullanıcı '%s' zaten mevcut, seed atlanıyor.", DemoEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Demo kullanıcı kontrol edilirken veritabanı hatası", zap.Error(err))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{Email: DemoEmail, PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Demo kullanıcı oluşturulamadı", zap.Error(err))
		return err
	}

	slug := DemoSlug
	akad := time.Date(2026, 12, 12, 8, 0, 0, 0, time.UTC)
	resepsi := time.Date(2026, 12, 12, 11, 0, 0, 0, time.UTC)
	personalize := models.Personalize{
		UserID:           user.ID,
		GroomName:        "Dilan",
		BrideName:        "Milea",
		GroomParents:     "Putra dari Bapak & Ibu Dilan",
		BrideParents:     "Putri dari Bapak & Ibu Milea",
		AkadLocation:     "Masjid Pusdai, Bandung",
		AkadDateTime:     &akad,
		ResepsiLocation:  "Gedung Sate, Bandung",
		ResepsiDateTime:  &resepsi,
		WebsiteTitle:     "The Wedding of Dilan & Milea",
		CustomURL:        &slug,
		Bank1Name:        "BCA",
		Bank1AccountName: "Dilan",
		GalleryImageURLs: datatypes.JSONSlice[string]{},
	}
	if err := db.Create(&personalize).Error; err != nil {
		configslog.Log.Error("Demo kişiselleştirme oluşturulamadı", zap.Error(err))
		return err
	}

	guest := models.Guest{
		PersonalizeID:  personalize.ID,
		Name:           "Budi",
		Phone:          "081234567890",
		Address:        "Bandung",
		InvitationType: models.InvitationTypePersonal,
		Code:           DemoInviteCode,
	}
	if err := db.Create(&guest).Error; err != nil {
		configslog.Log.Error("Demo davetli oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Demo tenant oluşturuldu: /%s/%s (giriş: %s)", DemoSlug, DemoInviteCode, DemoEmail)
	return nil
}
