package handlers

import (
	"undangan.link/middlewares"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler kayıt, giriş, çıkış ve oturum uçları.
type AuthHandler struct {
	service services.IAuthService
	cookie  middlewares.CookieOptions
	maxAge  int // saniye
}

func NewAuthHandler(service services.IAuthService, cookie middlewares.CookieOptions, maxAgeSeconds int) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie, maxAge: maxAgeSeconds}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.BadRequest(c, "Format data tidak valid.")
	}

	user, err := h.service.Register(c.UserContext(), input)
	if err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusCreated, fiber.Map{
		"message": "Registrasi berhasil.",
		"userId":  user.ID,
	})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.BadRequest(c, "Format data tidak valid.")
	}

	result, err := h.service.Login(c.UserContext(), input)
	if err != nil {
		return renderer.Error(c, err)
	}

	middlewares.SetSessionCookie(c, h.cookie, result.Token, h.maxAge)
	return renderer.Success(c, fiber.StatusOK, fiber.Map{
		"message":       "Login berhasil!",
		"userId":        result.UserID,
		"personalizeId": result.PersonalizeID,
	})
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	middlewares.ClearSessionCookie(c, h.cookie)
	return renderer.Success(c, fiber.StatusOK, fiber.Map{"message": "Logout berhasil."})
}

// Session GET /api/auth/session (AuthMiddleware arkasında)
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	tenant := middlewares.CurrentTenant(c)
	if tenant == nil {
		return renderer.Error(c, services.ErrUnauthorized)
	}
	return c.JSON(fiber.Map{
		"isLoggedIn": true,
		"user": fiber.Map{
			"id":            tenant.UserID,
			"email":         tenant.Email,
			"personalizeId": tenant.PersonalizeID,
		},
	})
}

// ChangePassword PUT /api/settings/password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	tenant := middlewares.CurrentTenant(c)
	if tenant == nil {
		return renderer.Error(c, services.ErrUnauthorized)
	}

	var input services.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.BadRequest(c, "Format data tidak valid.")
	}
	if err := h.service.ChangePassword(c.UserContext(), tenant.UserID, input); err != nil {
		return renderer.Error(c, err)
	}
	return renderer.Success(c, fiber.StatusOK, fiber.Map{"message": "Kata sandi berhasil diperbarui."})
}
