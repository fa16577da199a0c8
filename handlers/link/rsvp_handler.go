package handlers

import (
	"undangan.link/pkg/queryparams"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
)

// PublicRSVPHandler davetlinin RSVP ve ucapan gönderimleri.
type PublicRSVPHandler struct {
	rsvpService     services.IRSVPService
	wellWishService services.IWellWishService
	defaultPerPage  int
}

func NewPublicRSVPHandler(rsvpService services.IRSVPService, wellWishService services.IWellWishService, defaultPerPage int) *PublicRSVPHandler {
	return &PublicRSVPHandler{rsvpService: rsvpService, wellWishService: wellWishService, defaultPerPage: defaultPerPage}
}

// SubmitRSVP POST /api/rsvp
func (h *PublicRSVPHandler) SubmitRSVP(c *fiber.Ctx) error {
	var input services.RSVPInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.BadRequest(c, services.ErrRSVPIncomplete.Message)
	}

	rsvp, err := h.rsvpService.SubmitRSVP(c.UserContext(), input)
	if err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusOK, fiber.Map{
		"message": "RSVP berhasil disimpan!",
		"rsvp":    rsvp,
	})
}

// SubmitWellWish POST /api/ucapan
func (h *PublicRSVPHandler) SubmitWellWish(c *fiber.Ctx) error {
	var input services.WellWishInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.BadRequest(c, services.ErrWellWishIncomplete.Message)
	}

	wish, err := h.wellWishService.SubmitWellWish(c.UserContext(), input)
	if err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusCreated, fiber.Map{
		"message": "Ucapan berhasil dikirim!",
		"ucapan":  wish,
	})
}

// ListWellWishes GET /api/ucapan/:personalizeId?page=&per_page=
func (h *PublicRSVPHandler) ListWellWishes(c *fiber.Ctx) error {
	params := queryparams.Parse(c.Query("page"), c.Query("per_page"), h.defaultPerPage)

	result, err := h.wellWishService.ListWellWishes(c.UserContext(), c.Params("personalizeId"), params)
	if err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusOK, fiber.Map{
		"data": result.Data,
		"meta": result.Meta,
	})
}
