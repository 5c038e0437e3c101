package dto

import (
	"errors"
	"fmt"
)

// Error kinds shared by services and controllers. Wrap with %w and
// classify with errors.Is / errors.As.
var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrUpstream             = errors.New("completion service failed")
	ErrStorage              = errors.New("storage failure")
	ErrNotPersisted         = errors.New("reply generated but not persisted")
	ErrOnboardingIncomplete = errors.New("onboarding incomplete")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
)

// ValidationError carries a user-facing message for a rejected input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// OnboardingIncompleteError names the onboarding step the user still has to finish.
type OnboardingIncompleteError struct {
	NextStep string
}

func (e *OnboardingIncompleteError) Error() string {
	return fmt.Sprintf("onboarding incomplete: next step is %s", e.NextStep)
}

func (e *OnboardingIncompleteError) Unwrap() error {
	return ErrOnboardingIncomplete
}

// AuthError is an authentication failure whose message is safe to show.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return ErrUnauthorized
}
