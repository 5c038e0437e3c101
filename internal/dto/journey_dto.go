package dto

import (
	"time"

	"github.com/google/uuid"
)

// Onboarding

type SelectPlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

type SetRecipientRequest struct {
	RecipientName string `json:"recipient_name"`
}

type OnboardingResponse struct {
	PlanId        string     `json:"plan_id"`
	RecipientName string     `json:"recipient_name"`
	NextStep      string     `json:"next_step"`
	TotalDays     int        `json:"total_days"`
	CurrentDay    int        `json:"current_day"`
	Streak        int        `json:"streak"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
}

// Journal

type JournalPromptResponse struct {
	Day       int    `json:"day"`
	TotalDays int    `json:"total_days"`
	Category  string `json:"category"`
	Prompt    string `json:"prompt"`
}

type CreateJournalEntryRequest struct {
	Content  string `json:"content"`
	Prompt   string `json:"prompt"`
	Category string `json:"category" validate:"omitempty,oneof=wake_up understanding appreciation commitment"`
}

type JournalEntryResponse struct {
	Id        uuid.UUID `json:"id"`
	Day       int       `json:"day"`
	Category  string    `json:"category"`
	Prompt    string    `json:"prompt"`
	Content   string    `json:"content"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Dashboard

type DashboardResponse struct {
	FirstName       string `json:"first_name"`
	RecipientName   string `json:"recipient_name"`
	PlanId          string `json:"plan_id"`
	CurrentDay      int    `json:"current_day"`
	TotalDays       int    `json:"total_days"`
	ProgressPercent int    `json:"progress_percent"`
	Streak          int    `json:"streak"`
	EntriesCount    int64  `json:"entries_count"`
}

// Coach

type CoachIntroResponse struct {
	Greeting     string   `json:"greeting"`
	QuickPrompts []string `json:"quick_prompts"`
}

type CoachMessageRequest struct {
	Message string `json:"message"`
}

type CoachMessageResponse struct {
	Reply string `json:"reply"`
}
