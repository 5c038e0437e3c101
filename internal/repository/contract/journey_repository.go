package contract

import (
	"context"

	"cassie-be/internal/entity"
	"cassie-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OnboardingProfileRepository interface {
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.OnboardingProfile, error)
	Create(ctx context.Context, profile *entity.OnboardingProfile) error
	Save(ctx context.Context, profile *entity.OnboardingProfile) error
}

type JournalEntryRepository interface {
	Create(ctx context.Context, entry *entity.JournalEntry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JournalEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type PlanOrderRepository interface {
	Create(ctx context.Context, order *entity.PlanOrder) error
	Update(ctx context.Context, order *entity.PlanOrder) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PlanOrder, error)
	AppendNotification(ctx context.Context, id uuid.UUID, payload map[string]interface{}) error
}
