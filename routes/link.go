package routes

import (
	"undangan.link/di"

	"github.com/gofiber/fiber/v2"
)

// registerPublicLinkRoutes davetlinin eriştiği rotalar. Oturum gerekmez; yazma uçları IP başına sınırlıdır.
func registerPublicLinkRoutes(app *fiber.App, api fiber.Router, h *di.Handlers) {
	api.Post("/rsvp", h.RateLimit, h.PublicRSVP.SubmitRSVP)
	api.Post("/ucapan", h.RateLimit, h.PublicRSVP.SubmitWellWish)
	api.Get("/ucapan/:personalizeId", h.PublicRSVP.ListWellWishes)

	api.Get("/:customUrl/:inviteCode", h.Link.GetInvitation)

	// HTML davetiye sayfası
	app.Get("/:customUrl/:inviteCode", h.Link.HandleLink)
}
