package handlers

import (
	"undangan.link/middlewares"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
)

// GuestHandler davetli listesi ve davetiye gönderimi.
type GuestHandler struct {
	service services.IGuestService
}

func NewGuestHandler(service services.IGuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

// ListGuests GET /api/guests?personalize_id=
func (h *GuestHandler) ListGuests(c *fiber.Ctx) error {
	tenant := middlewares.CurrentTenant(c)
	if tenant == nil {
		return renderer.Error(c, services.ErrUnauthorized)
	}
	guests, err := h.service.ListGuests(c.UserContext(), tenant.PersonalizeID, c.Query("personalize_id"))
	if err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusOK, fiber.Map{"guests": guests})
}

// CreateGuest POST /api/guests
func (h *GuestHandler) CreateGuest(c *fiber.Ctx) error {
	tenant := middlewares.CurrentTenant(c)
	if tenant == nil {
		return renderer.Error(c, services.ErrUnauthorized)
	}
	var input services.CreateGuestInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.BadRequest(c, "Format data tidak valid.")
	}
	guest, err := h.service.CreateGuest(c.UserContext(), tenant.PersonalizeID, input)
	if err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusCreated, fiber.Map{"guest": guest})
}

// UpdateGuest PATCH /api/guests
func (h *GuestHandler) UpdateGuest(c *fiber.Ctx) error {
	tenant := middlewares.CurrentTenant(c)
	if tenant == nil {
		return renderer.Error(c, services.ErrUnauthorized)
	}
	var input services.UpdateGuestInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.BadRequest(c, "Format data tidak valid.")
	}
	guest, err := h.service.UpdateGuest(c.UserContext(), tenant.PersonalizeID, input)
	if err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusOK, fiber.Map{"guest": guest})
}

// DeleteGuest DELETE /api/guests
func (h *GuestHandler) DeleteGuest(c *fiber.Ctx) error {
	tenant := middlewares.CurrentTenant(c)
	if tenant == nil {
		return renderer.Error(c, services.ErrUnauthorized)
	}
	var input services.GuestRefInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.BadRequest(c, "Format data tidak valid.")
	}
	if err := h.service.DeleteGuest(c.UserContext(), tenant.PersonalizeID, input); err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusOK, fiber.Map{"message": "Tamu berhasil dihapus."})
}

// SendInvitation POST /api/guests/send
func (h *GuestHandler) SendInvitation(c *fiber.Ctx) error {
	tenant := middlewares.CurrentTenant(c)
	if tenant == nil {
		return renderer.Error(c, services.ErrUnauthorized)
	}
	var input services.GuestRefInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.BadRequest(c, "Format data tidak valid.")
	}
	guest, err := h.service.SendInvitation(c.UserContext(), tenant.PersonalizeID, input)
	if err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Undangan berhasil dikirim.",
		"guest":   guest,
	})
}
