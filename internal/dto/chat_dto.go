package dto

import (
	"time"

	"github.com/google/uuid"
)

// ReplyRequest is the body of POST /api/chat. SiteId and Context are optional.
type ReplyRequest struct {
	Message string  `json:"message"`
	SiteId  *string `json:"siteId,omitempty"`
	Context *string `json:"context,omitempty"`
	// IdempotencyKey comes from the Idempotency-Key header.
	IdempotencyKey string `json:"-"`
}

type ReplyResponse struct {
	Reply string `json:"reply"`
}

// ReplyErrorResponse is the flat error body of the chat endpoint.
type ReplyErrorResponse struct {
	Error string `json:"error"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	SiteId   string                `json:"site_id"`
	Messages []ChatMessageResponse `json:"messages"`
}
