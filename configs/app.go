package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig uygulamanın çalışma zamanı ayarlarını tutar.
type AppConfig struct {
	Env           string
	Port          string
	PublicBaseURL string
	BodyLimitMB   int

	Database  DatabaseConfig
	Session   SessionConfig
	Media     MediaConfig
	RateLimit RateLimitConfig
	WhatsApp  WhatsAppConfig

	WellWishPerPage int
}

// DatabaseConfig postgres veya sqlite bağlantı bilgileri.
type DatabaseConfig struct {
	Driver     string // postgres | sqlite
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	TimeZone   string
	SQLitePath string
}

// SessionConfig oturum token ayarları.
type SessionConfig struct {
	KeyHex       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// MediaConfig medya deposu ayarları.
type MediaConfig struct {
	Driver              string // local | cloudinary
	UploadDir           string
	UploadURLPrefix     string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	CleanupWorkers      int
	CleanupMaxAttempts  int
}

// RateLimitConfig public POST uçları için istemci başına limit.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// WhatsAppConfig davetiye gönderimi için whatsmeow ayarları.
type WhatsAppConfig struct {
	Enabled         bool
	DataDir         string
	MessageTemplate string
}

const defaultInvitationMessage = "Assalamu'alaikum %s,\n\nTanpa mengurangi rasa hormat, kami mengundang Anda untuk hadir di acara pernikahan kami.\n\nDetail undangan: %s\n\nTerima kasih."

// IsProduction APP_ENV=production ise true döner.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load .env dosyasını (varsa) yükler ve ortam değişkenlerinden ayarları okur.
func Load() *AppConfig {
	_ = godotenv.Load() // .env yoksa sorun değil, ortam değişkenleri kullanılır

	env := GetEnv("APP_ENV", "development")
	return &AppConfig{
		Env:           env,
		Port:          GetEnv("APP_PORT", "3000"),
		PublicBaseURL: strings.TrimRight(GetEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		BodyLimitMB:   GetEnvInt("BODY_LIMIT_MB", 10),
		Database: DatabaseConfig{
			Driver:     GetEnv("DB_DRIVER", "postgres"),
			Host:       GetEnv("DB_HOST", "localhost"),
			Port:       GetEnv("DB_PORT", "5432"),
			User:       GetEnv("DB_USER", "postgres"),
			Password:   GetEnv("DB_PASSWORD", ""),
			Name:       GetEnv("DB_NAME", "undangan"),
			SSLMode:    GetEnv("DB_SSLMODE", "disable"),
			TimeZone:   GetEnv("DB_TIMEZONE", "Asia/Jakarta"),
			SQLitePath: GetEnv("SQLITE_PATH", "data/undangan.db"),
		},
		Session: SessionConfig{
			KeyHex:       GetEnv("SESSION_KEY", ""),
			TTL:          GetEnvDuration("SESSION_TTL", time.Hour),
			CookieName:   "auth_token",
			CookieSecure: env == "production",
		},
		Media: MediaConfig{
			Driver:              GetEnv("MEDIA_DRIVER", "local"),
			UploadDir:           GetEnv("UPLOAD_DIR", "uploads"),
			UploadURLPrefix:     GetEnv("UPLOAD_URL_PREFIX", "/api/uploads/"),
			CloudinaryCloudName: GetEnv("CLOUDINARY_CLOUD_NAME", ""),
			CloudinaryAPIKey:    GetEnv("CLOUDINARY_API_KEY", ""),
			CloudinaryAPISecret: GetEnv("CLOUDINARY_API_SECRET", ""),
			CloudinaryFolder:    GetEnv("CLOUDINARY_FOLDER", "undangan"),
			CleanupWorkers:      GetEnvInt("MEDIA_CLEANUP_WORKERS", 0),
			CleanupMaxAttempts:  GetEnvInt("MEDIA_CLEANUP_MAX_ATTEMPTS", 2),
		},
		RateLimit: RateLimitConfig{
			RPS:   GetEnvFloat("RATE_LIMIT_RPS", 1),
			Burst: GetEnvInt("RATE_LIMIT_BURST", 5),
		},
		WhatsApp: WhatsAppConfig{
			Enabled:         GetEnvBool("WHATSAPP_ENABLED", false),
			DataDir:         GetEnv("WHATSAPP_DATA_DIR", "data/whatsapp"),
			MessageTemplate: GetEnv("WHATSAPP_MESSAGE_TEMPLATE", defaultInvitationMessage),
		},
		WellWishPerPage: GetEnvInt("WELLWISH_PER_PAGE", 20),
	}
}

// GetEnv ortam değişkenini okur, boşsa varsayılanı döner.
func GetEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(GetEnv(key, ""), 64); err == nil {
		return v
	}
	return defaultValue
}

func GetEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(GetEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(GetEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}
