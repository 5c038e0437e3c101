package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SiteId    string    `gorm:"type:varchar(64);not null;index:idx_chat_messages_site_created,priority:1"`
	Role      string    `gorm:"type:varchar(16);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_chat_messages_site_created,priority:2"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

type GeneratedContext struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SiteId        string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	UseCustom     bool      `gorm:"not null;default:false"`
	FullContext   string    `gorm:"type:text"`
	CustomContext string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (GeneratedContext) TableName() string {
	return "generated_contexts"
}
