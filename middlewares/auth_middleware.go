package middlewares

import (
	"strings"

	"undangan.link/configs/configslog"
	"undangan.link/pkg/sessiontoken"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const tenantLocalsKey = "tenant"

// TenantContext oturumdan bir kez çözülen kimlik. Handler'lar token'ı tekrar çözmez.
type TenantContext struct {
	UserID        uuid.UUID
	Email         string
	PersonalizeID uuid.UUID
}

// CookieOptions oturum çerezinin adı ve güvenlik bayrağı.
type CookieOptions struct {
	Name   string
	Secure bool
}

// AuthMiddleware çerezdeki (yoksa Authorization: Bearer) tokenı doğrular ve
// TenantContext'i locals'a koyar. Geçersiz token çerezi temizlenir.
func AuthMiddleware(tokens sessiontoken.IService, cookie CookieOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(cookie.Name)
		if raw == "" {
			if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
		}
		if raw == "" {
			return unauthorized(c)
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			configslog.Log.Debug("Geçersiz oturum tokenı", zap.String("path", c.Path()), zap.Error(err))
			ClearSessionCookie(c, cookie)
			return unauthorized(c)
		}

		tenant, err := tenantFromClaims(claims)
		if err != nil {
			configslog.Log.Warn("Token kimlik alanları bozuk", zap.Error(err))
			ClearSessionCookie(c, cookie)
			return unauthorized(c)
		}
		c.Locals(tenantLocalsKey, tenant)
		return c.Next()
	}
}

func tenantFromClaims(claims *sessiontoken.Claims) (*TenantContext, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, err
	}
	personalizeID, err := uuid.Parse(claims.PersonalizeID)
	if err != nil {
		return nil, err
	}
	return &TenantContext{UserID: userID, Email: claims.Email, PersonalizeID: personalizeID}, nil
}

// CurrentTenant AuthMiddleware'in koyduğu kimliği döner. Korumasız rotalarda nil'dir.
func CurrentTenant(c *fiber.Ctx) *TenantContext {
	tenant, _ := c.Locals(tenantLocalsKey).(*TenantContext)
	return tenant
}

// SetSessionCookie tokenı HttpOnly çerez olarak yazar.
func SetSessionCookie(c *fiber.Ctx, cookie CookieOptions, token string, maxAgeSeconds int) {
	c.Cookie(&fiber.Cookie{
		Name:     cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HTTPOnly: true,
		Secure:   cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie oturum çerezini siler.
func ClearSessionCookie(c *fiber.Ctx, cookie CookieOptions) {
	c.Cookie(&fiber.Cookie{
		Name:     cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  fasthttp.CookieExpireDelete,
		HTTPOnly: true,
		Secure:   cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": services.ErrUnauthorized.Message,
	})
}
