package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one stored turn of a site conversation. Append-only.
type ChatMessage struct {
	Id        uuid.UUID
	SiteId    string
	Role      ChatRole
	Content   string
	CreatedAt time.Time
}

// GeneratedContext is the persona text prepared for a site. UseCustom
// selects CustomContext over FullContext.
type GeneratedContext struct {
	Id            uuid.UUID
	SiteId        string
	UseCustom     bool
	FullContext   string
	CustomContext string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SelectedText returns the text the site owner chose to use.
func (g *GeneratedContext) SelectedText() string {
	if g == nil {
		return ""
	}
	if g.UseCustom {
		return g.CustomContext
	}
	return g.FullContext
}
