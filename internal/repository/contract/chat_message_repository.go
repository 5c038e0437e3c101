package contract

import (
	"context"

	"cassie-be/internal/entity"
	"cassie-be/internal/repository/specification"
)

// ChatMessageRepository is append-only.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	CreateBatch(ctx context.Context, messages []*entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
