package implementation

import (
	"context"
	"time"

	"cassie-be/internal/dto"
	"cassie-be/internal/entity"
	"cassie-be/internal/mapper"
	"cassie-be/internal/model"
	"cassie-be/internal/repository/contract"
	"cassie-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.Id == uuid.Nil {
		notification.Id = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(notification)).Error
}

func (r *NotificationRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error) {
	var rows []*model.Notification
	var total int64

	owned := specification.UserOwnedBy{UserID: userId}
	if err := applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}), owned).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applySpecifications(r.db.WithContext(ctx),
		owned,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return r.mapper.ToEntities(rows), total, nil
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}),
		specification.UserOwnedBy{UserID: userId},
		specification.Unread{},
	).Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(ctx context.Context, userId, notificationId uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationId, userId).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return dto.ErrNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	return applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}),
		specification.UserOwnedBy{UserID: userId},
		specification.Unread{},
	).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now().UTC(),
	}).Error
}
