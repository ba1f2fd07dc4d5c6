package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crane-workorders/internal/api/dto"
	"github.com/spec-kit/crane-workorders/internal/auth"
	"github.com/spec-kit/crane-workorders/internal/service"
	apperrors "github.com/spec-kit/crane-workorders/pkg/util"
)

// AuthHandler exposes login, logout and the current-user endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid login form")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password are required")
	}

	token, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if apperrors.ToDomainError(err).HTTPStatus == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}
		return err
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   int64(h.auth.TokenTTL().Seconds()),
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if err := h.auth.Logout(c.UserContext(), principal); err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// Me handles GET /api/users/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Invalid token")
	}
	return c.JSON(dto.MeResponse{
		Username: principal.User.Username,
		Disabled: principal.User.Disabled,
	})
}
