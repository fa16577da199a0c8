package routes

import (
	"undangan.link/di"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, h *di.Handlers) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())

	api := app.Group("/api")

	// --- Rota Grupları ---
	registerAuthRoutes(api, h)
	registerPanelRoutes(api, h)

	// Public link rotaları en sonda; /api/:customUrl/:inviteCode diğer /api rotalarını gölgelememeli.
	registerPublicLinkRoutes(app, api, h)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"name": "undangan.link", "status": "ok"})
	})

	// --- 404 Handler ---
	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "text/html":
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title":   "Halaman tidak ditemukan",
			"Message": "Halaman yang Anda cari tidak ada.",
		}, "layouts/error_layout")
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Resource tidak ditemukan."})
	}
}
