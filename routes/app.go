package routes

import (
	"errors"

	"undangan.link/configs/configslog"
	"undangan.link/di"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

// AppOptions Fiber uygulamasının çalışma ayarları.
type AppOptions struct {
	BodyLimitMB int
	ViewsDir    string
	Reload      bool // geliştirmede şablonları her istekte yeniden yükle
}

// NewApp şablon motorunu kurar, rotaları kaydeder ve uygulamayı döner.
func NewApp(opts AppOptions, h *di.Handlers) *fiber.App {
	if opts.BodyLimitMB <= 0 {
		opts.BodyLimitMB = 10
	}
	engine := html.New(opts.ViewsDir, ".html")
	engine.Reload(opts.Reload)

	app := fiber.New(fiber.Config{
		AppName:      "undangan.link",
		Views:        engine,
		BodyLimit:    opts.BodyLimitMB * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	SetupRoutes(app, h)
	return app
}

// errorHandler handler'lardan kaçan hataları JSON'a çevirir.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Terjadi kesalahan pada server."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("İşlenmeyen hata", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"success": false, "message": message})
}
