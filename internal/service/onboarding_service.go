package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cassie-be/internal/constant"
	"cassie-be/internal/dto"
	"cassie-be/internal/entity"
	"cassie-be/internal/pkg/logger"
	"cassie-be/internal/repository/specification"
	"cassie-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const onboardingModule = "OnboardingService"

type IOnboardingService interface {
	ListPlans() []constant.Plan
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.OnboardingResponse, error)
	SelectPlan(ctx context.Context, userId uuid.UUID, req *dto.SelectPlanRequest) (*dto.OnboardingResponse, error)
	SetRecipient(ctx context.Context, userId uuid.UUID, req *dto.SetRecipientRequest) (*dto.OnboardingResponse, error)
	// RequireComplete returns the profile of a user who finished onboarding,
	// or a *dto.OnboardingIncompleteError naming the missing step.
	RequireComplete(ctx context.Context, userId uuid.UUID) (*entity.OnboardingProfile, error)
}

type onboardingService struct {
	uowFactory unitofwork.RepositoryFactory
	// With live payments a plan can only be picked once its order is paid.
	requirePaidOrder bool
	logger           logger.ILogger
	now              func() time.Time
}

func NewOnboardingService(uowFactory unitofwork.RepositoryFactory, requirePaidOrder bool, log logger.ILogger) IOnboardingService {
	return &onboardingService{
		uowFactory:       uowFactory,
		requirePaidOrder: requirePaidOrder,
		logger:           log,
		now:              time.Now,
	}
}

func (s *onboardingService) ListPlans() []constant.Plan {
	return constant.Plans()
}

func (s *onboardingService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.OnboardingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.OnboardingProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrStorage, err)
	}
	if profile == nil {
		profile = &entity.OnboardingProfile{UserId: userId, CurrentDay: 1}
	}
	return toOnboardingResponse(profile), nil
}

func (s *onboardingService) SelectPlan(ctx context.Context, userId uuid.UUID, req *dto.SelectPlanRequest) (*dto.OnboardingResponse, error) {
	planId := strings.TrimSpace(req.Plan)
	if _, ok := constant.FindPlan(planId); !ok {
		return nil, dto.NewValidationError("plan", "Unknown plan")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if s.requirePaidOrder {
		order, err := uow.PlanOrderRepository().FindOne(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.PaidForPlan{PlanID: planId},
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", dto.ErrStorage, err)
		}
		if order == nil {
			return nil, dto.NewValidationError("plan", "Complete checkout to unlock this plan")
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	profile, err := selectPlan(ctx, uow, userId, planId, s.now())
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info(onboardingModule, "Plan selected", map[string]interface{}{"user_id": userId.String(), "plan": planId})
	return toOnboardingResponse(profile), nil
}

// selectPlan records the plan on the user's profile inside the caller's unit of work.
func selectPlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, planId string, now time.Time) (*entity.OnboardingProfile, error) {
	repo := uow.OnboardingProfileRepository()
	profile, err := repo.FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &entity.OnboardingProfile{UserId: userId, PlanId: planId, CurrentDay: 1}
		if err := repo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	profile.PlanId = planId
	if profile.CurrentDay < 1 {
		profile.CurrentDay = 1
	}
	if profile.RecipientName != "" && profile.StartedAt == nil {
		started := now.UTC()
		profile.StartedAt = &started
	}
	if err := repo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *onboardingService) SetRecipient(ctx context.Context, userId uuid.UUID, req *dto.SetRecipientRequest) (*dto.OnboardingResponse, error) {
	name := strings.TrimSpace(req.RecipientName)
	if name == "" {
		return nil, dto.NewValidationError("recipient_name", "Recipient name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.OnboardingProfileRepository()
	profile, err := repo.FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile.NextStep() == entity.OnboardingStepPlan {
		return nil, &dto.OnboardingIncompleteError{NextStep: entity.OnboardingStepPlan}
	}

	profile.RecipientName = name
	if profile.StartedAt == nil {
		started := s.now().UTC()
		profile.StartedAt = &started
		profile.CurrentDay = 1
	}
	if err := repo.Save(ctx, profile); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return toOnboardingResponse(profile), nil
}

func (s *onboardingService) RequireComplete(ctx context.Context, userId uuid.UUID) (*entity.OnboardingProfile, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.OnboardingProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrStorage, err)
	}
	if step := profile.NextStep(); step != entity.OnboardingStepComplete {
		return nil, &dto.OnboardingIncompleteError{NextStep: step}
	}
	return profile, nil
}

func toOnboardingResponse(p *entity.OnboardingProfile) *dto.OnboardingResponse {
	return &dto.OnboardingResponse{
		PlanId:        p.PlanId,
		RecipientName: p.RecipientName,
		NextStep:      p.NextStep(),
		TotalDays:     constant.TotalDaysForPlan(p.PlanId),
		CurrentDay:    p.CurrentDay,
		Streak:        p.Streak,
		StartedAt:     p.StartedAt,
	}
}
