package unitofwork

import (
	"context"

	"cassie-be/internal/repository/contract"
)

// UnitOfWork hands out repositories bound to one transaction once Begin
// has been called, or to the plain connection otherwise.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatMessageRepository() contract.ChatMessageRepository
	GeneratedContextRepository() contract.GeneratedContextRepository
	OnboardingProfileRepository() contract.OnboardingProfileRepository
	JournalEntryRepository() contract.JournalEntryRepository
	PlanOrderRepository() contract.PlanOrderRepository
	NotificationRepository() contract.NotificationRepository
}
