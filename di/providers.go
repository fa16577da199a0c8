package di

import (
	"context"
	"fmt"
	"time"

	"undangan.link/configs"
	"undangan.link/configs/configsdatabase"
	"undangan.link/configs/configslog"
	auth_handlers "undangan.link/handlers/auth"
	link_handlers "undangan.link/handlers/link"
	panel_handlers "undangan.link/handlers/panel"
	"undangan.link/middlewares"
	"undangan.link/pkg/mediastore"
	"undangan.link/pkg/ratelimit"
	"undangan.link/pkg/sessiontoken"
	"undangan.link/pkg/validation"
	"undangan.link/pkg/whatsapp"
	"undangan.link/repositories"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Altyapı ---

func ProvideConfig(i do.Injector) (*configs.AppConfig, error) {
	return configs.Load(), nil
}

// DatabaseHandle *gorm.DB'yi konteyner kapanırken kapatılacak şekilde sarar.
type DatabaseHandle struct {
	DB *gorm.DB
}

// Shutdown implements do.ShutdownerWithError.
func (h *DatabaseHandle) Shutdown() error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ProvideDatabase(i do.Injector) (*DatabaseHandle, error) {
	cfg := do.MustInvoke[*configs.AppConfig](i)

	db, err := configsdatabase.Open(cfg.Database, cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("veritabanı: %w", err)
	}
	configslog.SLog.Infof("Veritabanı bağlantısı kuruldu (driver=%s)", cfg.Database.Driver)
	return &DatabaseHandle{DB: db}, nil
}

func ProvideTokenService(i do.Injector) (sessiontoken.IService, error) {
	cfg := do.MustInvoke[*configs.AppConfig](i)

	if cfg.Session.KeyHex == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("SESSION_KEY production ortamında zorunludur")
		}
		configslog.SLog.Warn("SESSION_KEY boş; geçici anahtar üretildi, yeniden başlatınca oturumlar düşer")
	}
	tokens, err := sessiontoken.New(cfg.Session.KeyHex, cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("oturum anahtarı: %w", err)
	}
	return tokens, nil
}

func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideMediaStore yüklemeleri MEDIA_DRIVER'a göre yönlendirir. Yerel depo her zaman
// kayıtlıdır; böylece sürücü değişse de eski yerel referanslar temizlenebilir ve sunulabilir.
func ProvideMediaStore(i do.Injector) (*mediastore.Router, error) {
	cfg := do.MustInvoke[*configs.AppConfig](i)

	local, err := mediastore.NewLocalStore(cfg.Media.UploadDir, cfg.Media.UploadURLPrefix)
	if err != nil {
		return nil, fmt.Errorf("yerel medya deposu: %w", err)
	}

	switch cfg.Media.Driver {
	case "cloudinary":
		cloud, err := mediastore.NewCloudinaryStore(
			cfg.Media.CloudinaryCloudName,
			cfg.Media.CloudinaryAPIKey,
			cfg.Media.CloudinaryAPISecret,
			cfg.Media.CloudinaryFolder,
		)
		if err != nil {
			return nil, fmt.Errorf("cloudinary: %w", err)
		}
		configslog.SLog.Info("Medya deposu: cloudinary")
		return mediastore.NewRouter(cloud, local), nil
	case "local", "":
		configslog.SLog.Infof("Medya deposu: local (%s)", local.Dir())
		return mediastore.NewRouter(local), nil
	default:
		return nil, fmt.Errorf("desteklenmeyen MEDIA_DRIVER: %s", cfg.Media.Driver)
	}
}

// MediaCleanupHandle silme kuyruğunu kapanışta boşaltır.
type MediaCleanupHandle struct {
	Queue *services.MediaCleanupQueue
}

// Shutdown implements do.ShutdownerWithError.
func (h *MediaCleanupHandle) Shutdown() error {
	h.Queue.Close()
	return nil
}

func ProvideMediaCleanup(i do.Injector) (*MediaCleanupHandle, error) {
	cfg := do.MustInvoke[*configs.AppConfig](i)
	store := do.MustInvoke[*mediastore.Router](i)

	return &MediaCleanupHandle{
		Queue: services.NewMediaCleanupQueue(store, cfg.Media.CleanupWorkers, cfg.Media.CleanupMaxAttempts),
	}, nil
}

// RateLimiterHandle public POST uçlarının limitörü.
type RateLimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.ShutdownerWithError.
func (h *RateLimiterHandle) Shutdown() error {
	h.Limiter.Stop()
	return nil
}

func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*configs.AppConfig](i)
	return &RateLimiterHandle{Limiter: ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)}, nil
}

// SenderHandle WhatsApp göndericisi. Kapalıysa veya bağlanamazsa Sender nil'dir.
type SenderHandle struct {
	Sender *whatsapp.Sender
}

// Shutdown implements do.ShutdownerWithError.
func (h *SenderHandle) Shutdown() error {
	if h.Sender != nil {
		h.Sender.Disconnect()
	}
	return nil
}

func ProvideInvitationSender(i do.Injector) (*SenderHandle, error) {
	cfg := do.MustInvoke[*configs.AppConfig](i)
	if !cfg.WhatsApp.Enabled {
		return &SenderHandle{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sender, err := whatsapp.NewSender(ctx, cfg.WhatsApp.DataDir, configslog.Log)
	if err != nil {
		configslog.Log.Error("WhatsApp göndericisi açılamadı, gönderim kapalı", zap.Error(err))
		return &SenderHandle{}, nil
	}
	if err := sender.Connect(); err != nil {
		configslog.Log.Error("WhatsApp bağlantısı kurulamadı, gönderim kapalı", zap.Error(err))
		return &SenderHandle{}, nil
	}
	configslog.SLog.Info("WhatsApp göndericisi hazır")
	return &SenderHandle{Sender: sender}, nil
}

// --- Repository'ler ---

// Repositories tüm repository'leri tek noktada toplar.
type Repositories struct {
	Users       repositories.IUserRepository
	Personalize repositories.IPersonalizeRepository
	Guests      repositories.IGuestRepository
	RSVP        repositories.IRSVPRepository
	WellWishes  repositories.IWellWishRepository
}

func ProvideRepositories(i do.Injector) (*Repositories, error) {
	db := do.MustInvoke[*DatabaseHandle](i).DB
	return &Repositories{
		Users:       repositories.NewUserRepository(db),
		Personalize: repositories.NewPersonalizeRepository(db),
		Guests:      repositories.NewGuestRepository(db),
		RSVP:        repositories.NewRSVPRepository(db),
		WellWishes:  repositories.NewWellWishRepository(db),
	}, nil
}

// --- Servisler ---

func ProvideAuthService(i do.Injector) (services.IAuthService, error) {
	db := do.MustInvoke[*DatabaseHandle](i).DB
	repos := do.MustInvoke[*Repositories](i)
	return services.NewAuthService(
		db,
		repos.Users,
		repos.Personalize,
		do.MustInvoke[sessiontoken.IService](i),
		do.MustInvoke[*validation.Validator](i),
	), nil
}

func ProvidePersonalizeService(i do.Injector) (services.IPersonalizeService, error) {
	cfg := do.MustInvoke[*configs.AppConfig](i)
	repos := do.MustInvoke[*Repositories](i)
	cleanup := do.MustInvoke[*MediaCleanupHandle](i)

	loc, err := time.LoadLocation(cfg.Database.TimeZone)
	if err != nil {
		configslog.SLog.Warnf("DB_TIMEZONE yüklenemedi (%s), UTC kullanılıyor: %v", cfg.Database.TimeZone, err)
		loc = time.UTC
	}
	return services.NewPersonalizeService(repos.Personalize, cleanup.Queue, do.MustInvoke[*validation.Validator](i), loc), nil
}

func ProvideGuestService(i do.Injector) (services.IGuestService, error) {
	cfg := do.MustInvoke[*configs.AppConfig](i)
	repos := do.MustInvoke[*Repositories](i)

	var sender services.IInvitationSender
	if h := do.MustInvoke[*SenderHandle](i); h.Sender != nil {
		sender = h.Sender
	}
	return services.NewGuestService(
		repos.Guests,
		repos.Personalize,
		do.MustInvoke[*validation.Validator](i),
		sender,
		cfg.PublicBaseURL,
		cfg.WhatsApp.MessageTemplate,
	), nil
}

func ProvideRSVPService(i do.Injector) (services.IRSVPService, error) {
	repos := do.MustInvoke[*Repositories](i)
	return services.NewRSVPService(repos.Guests, repos.RSVP), nil
}

func ProvideWellWishService(i do.Injector) (services.IWellWishService, error) {
	repos := do.MustInvoke[*Repositories](i)
	return services.NewWellWishService(repos.Guests, repos.WellWishes), nil
}

func ProvideInvitationService(i do.Injector) (services.IInvitationService, error) {
	repos := do.MustInvoke[*Repositories](i)
	return services.NewInvitationService(repos.Personalize, repos.Guests), nil
}

// --- Handler'lar ---

// Handlers rotaların ihtiyaç duyduğu handler ve middleware'ler.
type Handlers struct {
	Auth        *auth_handlers.AuthHandler
	Personalize *panel_handlers.PersonalizeHandler
	Guests      *panel_handlers.GuestHandler
	Uploads     *panel_handlers.UploadHandler
	Link        *link_handlers.LinkHandler
	PublicRSVP  *link_handlers.PublicRSVPHandler

	RequireAuth fiber.Handler
	RateLimit   fiber.Handler
}

func ProvideHandlers(i do.Injector) (*Handlers, error) {
	cfg := do.MustInvoke[*configs.AppConfig](i)
	tokens := do.MustInvoke[sessiontoken.IService](i)
	store := do.MustInvoke[*mediastore.Router](i)
	limiter := do.MustInvoke[*RateLimiterHandle](i).Limiter

	cookie := middlewares.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}

	return &Handlers{
		Auth:        auth_handlers.NewAuthHandler(do.MustInvoke[services.IAuthService](i), cookie, int(tokens.TTL().Seconds())),
		Personalize: panel_handlers.NewPersonalizeHandler(do.MustInvoke[services.IPersonalizeService](i)),
		Guests:      panel_handlers.NewGuestHandler(do.MustInvoke[services.IGuestService](i)),
		Uploads:     panel_handlers.NewUploadHandler(store, store.Local()),
		Link:        link_handlers.NewLinkHandler(do.MustInvoke[services.IInvitationService](i)),
		PublicRSVP: link_handlers.NewPublicRSVPHandler(
			do.MustInvoke[services.IRSVPService](i),
			do.MustInvoke[services.IWellWishService](i),
			cfg.WellWishPerPage,
		),
		RequireAuth: middlewares.AuthMiddleware(tokens, cookie),
		RateLimit:   middlewares.RateLimitMiddleware(limiter),
	}, nil
}
