package auth_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crane-workorders/internal/auth"
	"github.com/spec-kit/crane-workorders/internal/domain"
	apperrors "github.com/spec-kit/crane-workorders/pkg/util"
)

type stubValidator map[string]*auth.Principal

func (s stubValidator) Validate(_ context.Context, token string) (*auth.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, apperrors.NewUnauthorized("Invalid token")
}

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"detail": de.Message})
		},
	})
	mw := auth.NewAuthMiddleware(stubValidator{
		"good": {User: &domain.User{ID: 1, Username: "admin"}},
	})
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		p, ok := auth.PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(p.User.Username)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer good", fiber.StatusOK},
		{"lowercase scheme", "bearer good", fiber.StatusOK},
		{"missing", "", fiber.StatusUnauthorized},
		{"basic scheme", "Basic good", fiber.StatusUnauthorized},
		{"empty token", "Bearer ", fiber.StatusUnauthorized},
		{"wrong token", "Bearer fake-jwt-token", fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.status == fiber.StatusUnauthorized {
				assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
			}
		})
	}
}
