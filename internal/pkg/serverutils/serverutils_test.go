package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"cassie-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userId := uuid.New()

	token, err := GenerateAccessToken(userId, "user", time.Hour)
	require.NoError(t, err)

	got, err := ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userId, got)
}

func TestParseAccessTokenRejectsExpiredAndForeign(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	expired, err := GenerateAccessToken(uuid.New(), "user", -time.Minute)
	require.NoError(t, err)
	_, err = ParseAccessToken(expired)
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	foreign, err := GenerateAccessToken(uuid.New(), "user", time.Hour)
	require.NoError(t, err)
	t.Setenv("JWT_SECRET", "test-secret")
	_, err = ParseAccessToken(foreign)
	assert.Error(t, err)
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userId := uuid.New()
	token, err := GenerateAccessToken(userId, "user", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", JwtMiddleware, func(ctx *fiber.Ctx) error {
		id, err := CurrentUserID(ctx)
		if err != nil {
			return err
		}
		return ctx.SendString(id.String())
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"garbage token", "Bearer nope", fiber.StatusUnauthorized},
		{"valid token", "Bearer " + token, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(ctx *fiber.Ctx) error {
		return dto.NewValidationError("password", "Password must be at least 6 characters")
	})
	app.Get("/onboarding", func(ctx *fiber.Ctx) error {
		return &dto.OnboardingIncompleteError{NextStep: "recipient"}
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return fmt.Errorf("wrapped: %w", errors.New("db down"))
	})

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/validation", 400, "Password must be at least 6 characters"},
		{"/onboarding", 409, "onboarding incomplete: next step is recipient"},
		{"/boom", 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
			if tt.status == 409 {
				assert.Equal(t, map[string]interface{}{"next_step": "recipient"}, body.Data)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type request struct {
		FullName string `validate:"required"`
		Email    string `validate:"required,email"`
	}

	err := ValidateRequest(request{Email: "a@b.co"})
	var ve *dto.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "full_name", ve.Field)
	assert.Equal(t, "full_name is required", ve.Message)
	assert.ErrorIs(t, err, dto.ErrInvalidRequest)

	assert.NoError(t, ValidateRequest(request{FullName: "Sam", Email: "sam@example.com"}))
}
