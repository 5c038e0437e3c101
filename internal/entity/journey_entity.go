package entity

import (
	"time"

	"github.com/google/uuid"
)

// OnboardingProfile holds the user's plan, recipient and program progress.
type OnboardingProfile struct {
	UserId        uuid.UUID
	PlanId        string
	RecipientName string
	StartedAt     *time.Time
	CurrentDay    int
	Streak        int
	LastEntryDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	OnboardingStepPlan      = "plan"
	OnboardingStepRecipient = "recipient"
	OnboardingStepComplete  = "complete"
)

// NextStep reports the first onboarding step still missing.
func (p *OnboardingProfile) NextStep() string {
	switch {
	case p == nil || p.PlanId == "":
		return OnboardingStepPlan
	case p.RecipientName == "":
		return OnboardingStepRecipient
	default:
		return OnboardingStepComplete
	}
}

type JournalEntry struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Day       int
	Category  string
	Prompt    string
	Content   string
	WordCount int
	CreatedAt time.Time
}

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

type PlanOrder struct {
	Id                    uuid.UUID
	UserId                uuid.UUID
	PlanId                string
	Amount                int64 // cents
	Currency              string
	Status                OrderStatus
	MidtransTransactionId string
	SnapToken             string
	SnapRedirectUrl       string
	PaidAt                *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
