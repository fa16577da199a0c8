package routes

import (
	"undangan.link/di"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(api fiber.Router, h *di.Handlers) {
	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/logout", h.Auth.Logout)
	authGroup.Get("/session", h.RequireAuth, h.Auth.Session)

	api.Put("/settings/password", h.RequireAuth, h.Auth.ChangePassword)
}
