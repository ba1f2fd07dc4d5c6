package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	notFound := ToDomainError(fmt.Errorf("wrapped: %w", NewNotFound("Workorder")))
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)
	assert.Equal(t, "Workorder not found", notFound.Message)

	route := ToDomainError(fiber.NewError(http.StatusMethodNotAllowed, "Method Not Allowed"))
	assert.Equal(t, http.StatusMethodNotAllowed, route.HTTPStatus)
	assert.Equal(t, "Method Not Allowed", route.Message)

	cause := errors.New("disk I/O error")
	internal := ToDomainError(cause)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.Equal(t, "INTERNAL_ERROR", internal.Code)
	assert.ErrorIs(t, internal, cause)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, ToDomainError(NewUnauthorized("Invalid token")).HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, ToDomainError(NewValidationError("title required")).HTTPStatus)
}
