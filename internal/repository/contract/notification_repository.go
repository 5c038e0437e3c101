package contract

import (
	"context"

	"cassie-be/internal/entity"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByUserId(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error)
	CountUnread(ctx context.Context, userId uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userId, notificationId uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
}
