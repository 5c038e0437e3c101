package service

import (
	"context"
	"errors"
	"testing"

	"cassie-be/internal/constant"
	"cassie-be/internal/dto"
	"cassie-be/internal/entity"
	"cassie-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboarding_ListPlansReturnsCopy(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewOnboardingService(factory, false, logger.NewNopLogger())

	plans := svc.ListPlans()
	require.Len(t, plans, 4)
	plans[0].Name = "changed"

	assert.NotEqual(t, "changed", svc.ListPlans()[0].Name)
}

func TestOnboarding_GetProfileWithoutRow(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewOnboardingService(factory, false, logger.NewNopLogger())

	resp, err := svc.GetProfile(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingStepPlan, resp.NextStep)
	assert.Equal(t, 1, resp.CurrentDay)
}

func TestOnboarding_FullFlow(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewOnboardingService(factory, false, logger.NewNopLogger())
	user := seedUser(t, factory, "Dana Lee", &entity.OnboardingProfile{})
	ctx := context.Background()

	_, err := svc.RequireComplete(ctx, user.Id)
	var incomplete *dto.OnboardingIncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, entity.OnboardingStepPlan, incomplete.NextStep)

	resp, err := svc.SelectPlan(ctx, user.Id, &dto.SelectPlanRequest{Plan: constant.PlanJourney})
	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingStepRecipient, resp.NextStep)
	assert.Equal(t, 60, resp.TotalDays)

	_, err = svc.RequireComplete(ctx, user.Id)
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, entity.OnboardingStepRecipient, incomplete.NextStep)

	resp, err = svc.SetRecipient(ctx, user.Id, &dto.SetRecipientRequest{RecipientName: "  Sam "})
	require.NoError(t, err)
	assert.Equal(t, "Sam", resp.RecipientName)
	assert.Equal(t, entity.OnboardingStepComplete, resp.NextStep)
	assert.NotNil(t, resp.StartedAt)

	profile, err := svc.RequireComplete(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, constant.PlanJourney, profile.PlanId)
}

func TestOnboarding_SelectPlanCreatesMissingProfile(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewOnboardingService(factory, false, logger.NewNopLogger())
	user := seedUser(t, factory, "Dana", nil)

	resp, err := svc.SelectPlan(context.Background(), user.Id, &dto.SelectPlanRequest{Plan: constant.PlanSpark})

	require.NoError(t, err)
	assert.Equal(t, constant.PlanSpark, resp.PlanId)
	assert.Equal(t, constant.PlanSpark, loadProfile(t, factory, user.Id).PlanId)
}

func TestOnboarding_Validation(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewOnboardingService(factory, false, logger.NewNopLogger())
	user := seedUser(t, factory, "Dana", &entity.OnboardingProfile{})
	ctx := context.Background()

	_, err := svc.SelectPlan(ctx, user.Id, &dto.SelectPlanRequest{Plan: "platinum"})
	var verr *dto.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Unknown plan", verr.Message)

	_, err = svc.SetRecipient(ctx, user.Id, &dto.SetRecipientRequest{RecipientName: "   "})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Recipient name is required", verr.Message)

	_, err = svc.SetRecipient(ctx, user.Id, &dto.SetRecipientRequest{RecipientName: "Sam"})
	assert.ErrorIs(t, err, dto.ErrOnboardingIncomplete)
}

func TestOnboarding_LivePaymentsRequirePaidOrder(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewOnboardingService(factory, true, logger.NewNopLogger())
	user := seedUser(t, factory, "Dana Lee", &entity.OnboardingProfile{})
	ctx := context.Background()

	_, err := svc.SelectPlan(ctx, user.Id, &dto.SelectPlanRequest{Plan: constant.PlanSpark})
	var validation *dto.ValidationError
	require.True(t, errors.As(err, &validation))

	require.NoError(t, factory.NewUnitOfWork(ctx).PlanOrderRepository().Create(ctx, &entity.PlanOrder{
		UserId:   user.Id,
		PlanId:   constant.PlanSpark,
		Amount:   29,
		Currency: "USD",
		Status:   entity.OrderStatusPaid,
	}))

	resp, err := svc.SelectPlan(ctx, user.Id, &dto.SelectPlanRequest{Plan: constant.PlanSpark})
	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingStepRecipient, resp.NextStep)

	// A paid order for one plan does not unlock another.
	_, err = svc.SelectPlan(ctx, user.Id, &dto.SelectPlanRequest{Plan: constant.PlanTransform})
	assert.ErrorIs(t, err, dto.ErrInvalidRequest)
}
