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

type JournalEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JourneyMapper
}

func NewJournalEntryRepository(db *gorm.DB) contract.JournalEntryRepository {
	return &JournalEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewJourneyMapper(),
	}
}

func (r *JournalEntryRepositoryImpl) Create(ctx context.Context, entry *entity.JournalEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	m := r.mapper.JournalEntryToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.JournalEntryToEntity(m)
	return nil
}

func (r *JournalEntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JournalEntry, error) {
	return findOne(r.db.WithContext(ctx), r.mapper.JournalEntryToEntity, specs...)
}

func (r *JournalEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalEntry, error) {
	var rows []*model.JournalEntry
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*entity.JournalEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.JournalEntryToEntity(row))
	}
	return result, nil
}

func (r *JournalEntryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.JournalEntry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
