package implementation

import (
	"context"

	"cassie-be/internal/entity"
	"cassie-be/internal/mapper"
	"cassie-be/internal/repository/contract"
	"cassie-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GeneratedContextRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewGeneratedContextRepository(db *gorm.DB) contract.GeneratedContextRepository {
	return &GeneratedContextRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *GeneratedContextRepositoryImpl) FindBySiteId(ctx context.Context, siteId string) (*entity.GeneratedContext, error) {
	return findOne(r.db.WithContext(ctx), r.mapper.GeneratedContextToEntity, specification.BySiteID{SiteID: siteId})
}

// Save upserts on site_id.
func (r *GeneratedContextRepositoryImpl) Save(ctx context.Context, generated *entity.GeneratedContext) error {
	if generated.Id == uuid.Nil {
		generated.Id = uuid.New()
	}
	m := r.mapper.GeneratedContextToModel(generated)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "site_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"use_custom", "full_context", "custom_context", "updated_at"}),
	}).Create(m).Error
}
