package routes

import (
	"undangan.link/di"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes çiftin kendi verisini yönettiği, oturum gerektiren rotalar.
func registerPanelRoutes(api fiber.Router, h *di.Handlers) {
	// --- Personalisasi ---
	api.Get("/personalize", h.RequireAuth, h.Personalize.GetPersonalize)    // GET /api/personalize?id=
	api.Put("/personalize", h.RequireAuth, h.Personalize.UpdatePersonalize) // PUT /api/personalize

	// --- Tamu ---
	guests := api.Group("/guests", h.RequireAuth)
	guests.Get("", h.Guests.ListGuests)           // GET /api/guests?personalize_id=
	guests.Post("", h.Guests.CreateGuest)         // POST /api/guests
	guests.Patch("", h.Guests.UpdateGuest)        // PATCH /api/guests
	guests.Delete("", h.Guests.DeleteGuest)       // DELETE /api/guests
	guests.Post("/send", h.Guests.SendInvitation) // POST /api/guests/send

	// --- Upload ---
	api.Post("/uploads", h.RequireAuth, h.Uploads.Upload) // POST /api/uploads
	api.Get("/uploads/:filename", h.Uploads.Serve)        // GET /api/uploads/{filename}
}
