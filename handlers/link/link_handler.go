package handlers

import (
	"undangan.link/configs/configslog"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const unavailableMessage = "Undangan tidak tersedia"

// LinkHandler davetlinin kişisel davetiye linkini (/:customUrl/:inviteCode) yönetir.
type LinkHandler struct {
	invitationService services.IInvitationService
}

func NewLinkHandler(invitationService services.IInvitationService) *LinkHandler {
	return &LinkHandler{invitationService: invitationService}
}

// GetInvitation GET /api/:customUrl/:inviteCode
func (h *LinkHandler) GetInvitation(c *fiber.Ctx) error {
	view, err := h.invitationService.GetInvitation(c.UserContext(), c.Params("customUrl"), c.Params("inviteCode"))
	if err != nil {
		return renderer.Error(c, err)
	}
	return c.JSON(view)
}

// HandleLink GET /:customUrl/:inviteCode
// Hata detayı gösterilmez; her başarısızlıkta genel "tidak tersedia" sayfası çizilir.
func (h *LinkHandler) HandleLink(c *fiber.Ctx) error {
	slug, code := c.Params("customUrl"), c.Params("inviteCode")

	view, err := h.invitationService.GetInvitation(c.UserContext(), slug, code)
	if err != nil {
		switch services.KindOf(err) {
		case services.KindNotFound, services.KindBadRequest:
			configslog.SLog.Warnf("Davetiye bulunamadı: %s/%s", slug, code)
			return h.renderNotFound(c)
		default:
			configslog.Log.Error("HandleLink: davetiye yüklenemedi", zap.String("slug", slug), zap.Error(err))
			return h.renderError(c)
		}
	}

	title := view.WebsiteTitle
	if title == "" {
		title = view.GroomName + " & " + view.BrideName
	}
	return renderer.Render(c, "public/invitation", "layouts/public_layout", fiber.Map{
		"Title":      title,
		"Invitation": view,
	}, fiber.StatusOK)
}

// renderNotFound standart 404 sayfasını çizer.
func (h *LinkHandler) renderNotFound(c *fiber.Ctx) error {
	return renderer.Render(c, "errors/404", "layouts/error_layout", fiber.Map{
		"Title":   unavailableMessage,
		"Message": "Undangan yang Anda cari tidak ditemukan atau sudah tidak aktif.",
	}, fiber.StatusNotFound)
}

// renderError standart 500 sayfasını çizer.
func (h *LinkHandler) renderError(c *fiber.Ctx) error {
	return renderer.Render(c, "errors/500", "layouts/error_layout", fiber.Map{
		"Title":   unavailableMessage,
		"Message": "Silakan coba beberapa saat lagi.",
	}, fiber.StatusInternalServerError)
}
