// Package renderer handler'lar için ortak HTML ve JSON yanıt yardımcıları.
package renderer

import (
	"errors"

	"undangan.link/configs/configslog"
	"undangan.link/pkg/validation"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Render şablonu verilen layout ile çizer. data nil olabilir.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if layout == "" {
		return c.Status(status).Render(view, data)
	}
	return c.Status(status).Render(view, data, layout)
}

// Success {success:true, ...extra} yazar.
func Success(c *fiber.Ctx, status int, extra fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// Error servis hatasını HTTP durumuna çevirip {success:false, message} yazar.
// Internal hatalar loglanır, istemciye genel mesaj döner.
func Error(c *fiber.Ctx, err error) error {
	kind := services.KindOf(err)
	if kind == services.KindInternal {
		configslog.Log.Error("İstek işlenemedi",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	body := fiber.Map{
		"success": false,
		"message": services.PublicMessage(err),
	}
	var ve *validation.Error
	if errors.As(err, &ve) {
		body["errors"] = ve.Fields
	}
	return c.Status(kind.HTTPStatus()).JSON(body)
}

// BadRequest gövde okunamadığında kullanılır.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": message})
}
