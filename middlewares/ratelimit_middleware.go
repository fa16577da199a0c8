package middlewares

import (
	"undangan.link/configs/configslog"
	"undangan.link/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// RateLimitMiddleware istemci IP'si başına istek hızını sınırlar; aşımda 429 döner.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter.Allow(c.IP()) {
			return c.Next()
		}
		configslog.SLog.Warnf("Rate limit aşıldı: %s %s", c.IP(), c.Path())
		c.Set(fiber.HeaderRetryAfter, "1")
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false,
			"message": "Terlalu banyak permintaan, coba lagi nanti.",
		})
	}
}
