package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Personalize bir çiftin davetiye sitesi. ID aynı zamanda tenant sınırıdır.
type Personalize struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	// Çift bilgileri
	GroomName    string `gorm:"type:varchar(255)" json:"groom_name"`
	GroomIG      string `gorm:"column:ig_groom;type:varchar(255)" json:"ig_groom"`
	BrideName    string `gorm:"type:varchar(255)" json:"bride_name"`
	BrideIG      string `gorm:"column:ig_bride;type:varchar(255)" json:"ig_bride"`
	GroomParents string `gorm:"type:text" json:"groom_parents"`
	BrideParents string `gorm:"type:text" json:"bride_parents"`

	// Akad ve resepsiyon
	AkadLocation    string     `gorm:"type:text" json:"akad_location"`
	AkadMap         string     `gorm:"type:text" json:"akad_map"`
	AkadDateTime    *time.Time `gorm:"column:akad_datetime" json:"akad_datetime"`
	ResepsiLocation string     `gorm:"type:text" json:"resepsi_location"`
	ResepsiMap      string     `gorm:"type:text" json:"resepsi_map"`
	ResepsiDateTime *time.Time `gorm:"column:resepsi_datetime" json:"resepsi_datetime"`

	WebsiteTitle string  `gorm:"type:varchar(255)" json:"website_title"`
	CustomURL    *string `gorm:"column:custom_url;type:varchar(255);uniqueIndex" json:"custom_url"` // Tüm tenantlar arasında benzersiz, boşsa NULL

	// Hediye hesapları
	Bank1Name          string `gorm:"column:bank1_name;type:varchar(100)" json:"bank1_name"`
	Bank1AccountName   string `gorm:"column:bank1_account_name;type:varchar(255)" json:"bank1_account_name"`
	Bank1AccountNumber string `gorm:"column:bank1_account_number;type:varchar(100)" json:"bank1_account_number"`
	Bank2Name          string `gorm:"column:bank2_name;type:varchar(100)" json:"bank2_name"`
	Bank2AccountName   string `gorm:"column:bank2_account_name;type:varchar(255)" json:"bank2_account_name"`
	Bank2AccountNumber string `gorm:"column:bank2_account_number;type:varchar(100)" json:"bank2_account_number"`

	// Görsel referansları (URL)
	CoverImageURL    string                     `gorm:"type:text" json:"cover_image_url"`
	HeroImageURL     string                     `gorm:"type:text" json:"hero_image_url"`
	GroomImageURL    string                     `gorm:"type:text" json:"groom_image_url"`
	BrideImageURL    string                     `gorm:"type:text" json:"bride_image_url"`
	GalleryImageURLs datatypes.JSONSlice[string] `gorm:"column:gallery_image_urls" json:"gallery_image_urls"` // Sıralı, asla null değil

	// İlişkiler
	Guests     []Guest    `gorm:"foreignKey:PersonalizeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	WellWishes []WellWish `gorm:"foreignKey:PersonalizeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (Personalize) TableName() string { return "personalize" }

// Slug custom_url değerini (yoksa boş string) döner.
func (p *Personalize) Slug() string {
	if p.CustomURL == nil {
		return ""
	}
	return *p.CustomURL
}

// ImageRefs tek görsel alanlarını sabit sırayla döner: cover, hero, groom, bride.
func (p *Personalize) ImageRefs() []string {
	return []string{p.CoverImageURL, p.HeroImageURL, p.GroomImageURL, p.BrideImageURL}
}

// Gallery galeri listesini nil yerine boş dilim olarak döner.
func (p *Personalize) Gallery() []string {
	if p.GalleryImageURLs == nil {
		return []string{}
	}
	return []string(p.GalleryImageURLs)
}
