package implementation

import (
	"context"

	"cassie-be/internal/entity"
	"cassie-be/internal/mapper"
	"cassie-be/internal/repository/contract"
	"cassie-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OnboardingProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JourneyMapper
}

func NewOnboardingProfileRepository(db *gorm.DB) contract.OnboardingProfileRepository {
	return &OnboardingProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewJourneyMapper(),
	}
}

func (r *OnboardingProfileRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.OnboardingProfile, error) {
	return findOne(r.db.WithContext(ctx), r.mapper.ProfileToEntity, specification.UserOwnedBy{UserID: userId})
}

func (r *OnboardingProfileRepositoryImpl) Create(ctx context.Context, profile *entity.OnboardingProfile) error {
	m := r.mapper.ProfileToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ProfileToEntity(m)
	return nil
}

func (r *OnboardingProfileRepositoryImpl) Save(ctx context.Context, profile *entity.OnboardingProfile) error {
	m := r.mapper.ProfileToModel(profile)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ProfileToEntity(m)
	return nil
}
