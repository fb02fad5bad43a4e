package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/models"
)

// HandleRegister creates a user account.
//
//	@Summary  Register a new user
//	@Accept   json
//	@Produce  json
//	@Param    request body models.RegisterRequest true "registration data"
//	@Success  201 {object} models.MessageResponse
//	@Router   /api/auth/register [post]
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	user, err := h.Auth.Register(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.MessageResponse{
		Message: fmt.Sprintf("user registered successfully, id: %s", user.ID),
	})
}

// HandleLogin authenticates a user and returns a token.
//
//	@Summary  Log in
//	@Accept   json
//	@Produce  json
//	@Param    request body models.LoginRequest true "credentials"
//	@Success  200 {object} models.AuthResponse
//	@Router   /api/auth/login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	resp, err := h.Auth.Authenticate(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// HandleLogout acknowledges a logout. Tokens are stateless and
// self-expiring; the client discards its copy, nothing happens here.
//
//	@Summary  Log out
//	@Produce  json
//	@Success  200 {object} models.MessageResponse
//	@Router   /api/auth/logout [post]
func (h *Handler) HandleLogout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.MessageResponse{Message: "logged out"})
}
