package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/oneresume/api/http/presenter"
	"github.com/artem13815/oneresume/pkg/profile"
	"github.com/artem13815/oneresume/pkg/remote"
	"github.com/artem13815/oneresume/pkg/session"
	"github.com/artem13815/oneresume/pkg/users"
	"github.com/artem13815/oneresume/pkg/validation"
	"github.com/artem13815/oneresume/pkg/workflow"
)

const invalidPasswordMessage = "Invalid password. Please try again."

// statusFor maps domain errors onto HTTP statuses. The no-profile case is
// checked before generic validation errors.
func statusFor(err error) int {
	var se *remote.ServiceError
	switch {
	case errors.Is(err, profile.ErrNoProfile):
		return http.StatusNotFound
	case errors.Is(err, users.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrNoSession):
		return http.StatusUnauthorized
	case validation.Is(err):
		return http.StatusBadRequest
	case errors.Is(err, profile.ErrUnknownCollection), errors.Is(err, users.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrSuperseded):
		return http.StatusConflict
	case errors.As(err, &se):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	var se *remote.ServiceError
	switch {
	case errors.Is(err, profile.ErrNoProfile):
		return profile.ErrNoProfile.Error()
	case errors.Is(err, users.ErrInvalidCredentials):
		return invalidPasswordMessage
	case validation.Is(err):
		var v validation.Error
		errors.As(err, &v)
		return v.Error()
	case errors.As(err, &se):
		return se.Error()
	case statusFor(err) == http.StatusInternalServerError:
		return "internal error"
	default:
		return err.Error()
	}
}

func writeError(c *fiber.Ctx, err error) error {
	return presenter.Error(c, statusFor(err), messageFor(err))
}

func userID(c *fiber.Ctx) (string, error) {
	id, _ := c.Locals("userId").(string)
	if id == "" {
		return "", session.ErrNoSession
	}
	return id, nil
}
