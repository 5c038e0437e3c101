package implementation

import (
	"context"

	"cassie-be/internal/entity"
	"cassie-be/internal/mapper"
	"cassie-be/internal/model"
	"cassie-be/internal/repository/contract"
	"cassie-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	return r.CreateBatch(ctx, []*entity.ChatMessage{message})
}

// CreateBatch inserts the messages in slice order with a single statement.
func (r *ChatMessageRepositoryImpl) CreateBatch(ctx context.Context, messages []*entity.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	rows := make([]*model.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Id == uuid.Nil {
			msg.Id = uuid.New()
		}
		rows = append(rows, r.mapper.ChatMessageToModel(msg))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var rows []*model.ChatMessage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.ChatMessage, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.ChatMessageToEntity(row))
	}
	return result, nil
}

func (r *ChatMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ChatMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
