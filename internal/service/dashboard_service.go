package service

import (
	"context"
	"fmt"
	"math"

	"cassie-be/internal/constant"
	"cassie-be/internal/dto"
	"cassie-be/internal/entity"
	"cassie-be/internal/repository/specification"
	"cassie-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const defaultFirstName = "there"

type IDashboardService interface {
	GetDashboard(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	uowFactory        unitofwork.RepositoryFactory
	onboardingService IOnboardingService
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory, onboardingService IOnboardingService) IDashboardService {
	return &dashboardService{
		uowFactory:        uowFactory,
		onboardingService: onboardingService,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error) {
	profile, err := s.onboardingService.RequireComplete(ctx, userId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrStorage, err)
	}
	if user == nil {
		return nil, dto.ErrUnauthorized
	}

	count, err := uow.JournalEntryRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrStorage, err)
	}

	totalDays := constant.TotalDaysForPlan(profile.PlanId)
	return &dto.DashboardResponse{
		FirstName:       greetingName(user),
		RecipientName:   profile.RecipientName,
		PlanId:          profile.PlanId,
		CurrentDay:      profile.CurrentDay,
		TotalDays:       totalDays,
		ProgressPercent: progressPercent(profile.CurrentDay, totalDays),
		Streak:          profile.Streak,
		EntriesCount:    count,
	}, nil
}

// greetingName falls back to "there" for users without a usable name.
func greetingName(user *entity.User) string {
	if name := user.FirstName(); name != "" {
		return name
	}
	return defaultFirstName
}

func progressPercent(current, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(current) / float64(total) * 100))
}
