package serverutils

import (
	"errors"

	"cassie-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err)
	}
}

// WriteError writes err as the JSON envelope. An incomplete onboarding
// carries {"next_step": ...} in data.
func WriteError(ctx *fiber.Ctx, err error) error {
	code, message := StatusFor(err)
	resp := ErrorResponse(code, message)

	var onboardingErr *dto.OnboardingIncompleteError
	if errors.As(err, &onboardingErr) {
		resp.Data = fiber.Map{"next_step": onboardingErr.NextStep}
	}
	return ctx.Status(code).JSON(resp)
}

// StatusFor maps an error to an HTTP status and a client-safe message.
func StatusFor(err error) (int, string) {
	var fiberErr *fiber.Error
	var validationErr *dto.ValidationError
	var onboardingErr *dto.OnboardingIncompleteError
	var authErr *dto.AuthError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Message
	case errors.As(err, &onboardingErr):
		return fiber.StatusConflict, onboardingErr.Error()
	case errors.As(err, &authErr):
		return fiber.StatusUnauthorized, authErr.Message
	case errors.Is(err, dto.ErrInvalidRequest):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, dto.ErrUnauthorized):
		return fiber.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, dto.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
