package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OnboardingProfile struct {
	UserId        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlanId        string    `gorm:"type:varchar(32)"`
	RecipientName string    `gorm:"type:varchar(255)"`
	StartedAt     *time.Time
	CurrentDay    int `gorm:"not null;default:1"`
	Streak        int `gorm:"not null;default:0"`
	LastEntryDate *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (OnboardingProfile) TableName() string {
	return "onboarding_profiles"
}

type JournalEntry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_journal_entries_user_created,priority:1"`
	Day       int       `gorm:"not null"`
	Category  string    `gorm:"type:varchar(32);not null"`
	Prompt    string    `gorm:"type:text"`
	Content   string    `gorm:"type:text;not null"`
	WordCount int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null;index:idx_journal_entries_user_created,priority:2"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

type PlanOrder struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId                uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId                string    `gorm:"type:varchar(32);not null"`
	Amount                int64     `gorm:"not null"`
	Currency              string    `gorm:"type:varchar(8);not null"`
	Status                string    `gorm:"type:varchar(16);not null;index"`
	MidtransTransactionId string    `gorm:"type:varchar(255)"`
	SnapToken             string    `gorm:"type:varchar(255)"`
	SnapRedirectUrl       string    `gorm:"type:text"`
	// Raw webhook payloads, newest last
	Notifications datatypes.JSON
	PaidAt        *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (PlanOrder) TableName() string {
	return "plan_orders"
}
