package models

// User davetiye sahibi (çift) hesabı.
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password;type:varchar(255);not null" json:"-"`

	// Kullanıcı başına tek kişiselleştirme kaydı (personalize.user_id unique)
	Personalize *Personalize `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (User) TableName() string { return "users" }
