package handlers

import (
	"undangan.link/middlewares"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
)

// PersonalizeHandler çiftin davetiye sitesi ayarları.
type PersonalizeHandler struct {
	service services.IPersonalizeService
}

func NewPersonalizeHandler(service services.IPersonalizeService) *PersonalizeHandler {
	return &PersonalizeHandler{service: service}
}

// GetPersonalize GET /api/personalize?id=
func (h *PersonalizeHandler) GetPersonalize(c *fiber.Ctx) error {
	tenant := middlewares.CurrentTenant(c)
	if tenant == nil {
		return renderer.Error(c, services.ErrUnauthorized)
	}

	requested := c.Query("id")
	if requested == "" {
		requested = tenant.PersonalizeID.String()
	}
	record, err := h.service.GetPersonalize(c.UserContext(), tenant.PersonalizeID, requested)
	if err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusOK, fiber.Map{"data": record})
}

// UpdatePersonalize PUT /api/personalize
// Gövde kaydın tamamını taşır; eski kayıtta kalıp yenisinde olmayan görseller silinir.
func (h *PersonalizeHandler) UpdatePersonalize(c *fiber.Ctx) error {
	tenant := middlewares.CurrentTenant(c)
	if tenant == nil {
		return renderer.Error(c, services.ErrUnauthorized)
	}

	var input services.PersonalizeInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.BadRequest(c, "Format data tidak valid.")
	}

	record, err := h.service.UpdatePersonalize(c.UserContext(), tenant.PersonalizeID, input)
	if err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Data personalisasi berhasil disimpan.",
		"data":    record,
	})
}
