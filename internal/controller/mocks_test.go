package controller

import (
	"context"
	"testing"
	"time"

	"cassie-be/internal/dto"
	"cassie-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReplyService struct {
	mock.Mock
}

func (m *MockReplyService) Reply(ctx context.Context, req *dto.ReplyRequest) (*dto.ReplyResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReplyResponse), args.Error(1)
}

func (m *MockReplyService) ResolveSystemContext(ctx context.Context, siteId, explicit *string) (string, error) {
	args := m.Called(ctx, siteId, explicit)
	return args.String(0), args.Error(1)
}

func (m *MockReplyService) History(ctx context.Context, siteId string) (*dto.ChatHistoryResponse, error) {
	args := m.Called(ctx, siteId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChatHistoryResponse), args.Error(1)
}

type MockCoachService struct {
	mock.Mock
}

func (m *MockCoachService) Intro(ctx context.Context, userId uuid.UUID) (*dto.CoachIntroResponse, error) {
	args := m.Called(ctx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CoachIntroResponse), args.Error(1)
}

func (m *MockCoachService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.CoachMessageRequest) (*dto.CoachMessageResponse, error) {
	args := m.Called(ctx, userId, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CoachMessageResponse), args.Error(1)
}

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CurrentPrompt(ctx context.Context, userId uuid.UUID) (*dto.JournalPromptResponse, error) {
	args := m.Called(ctx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JournalPromptResponse), args.Error(1)
}

func (m *MockJournalService) NewPrompt(ctx context.Context, userId uuid.UUID, category string) (*dto.JournalPromptResponse, error) {
	args := m.Called(ctx, userId, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JournalPromptResponse), args.Error(1)
}

func (m *MockJournalService) CreateEntry(ctx context.Context, userId uuid.UUID, req *dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error) {
	args := m.Called(ctx, userId, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JournalEntryResponse), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, userId uuid.UUID) ([]dto.JournalEntryResponse, error) {
	args := m.Called(ctx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.JournalEntryResponse), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	args := m.Called(ctx, userId, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CheckoutResponse), args.Error(1)
}

func (m *MockPaymentService) HandleNotification(ctx context.Context, req *dto.MidtransNotificationRequest) error {
	return m.Called(ctx, req).Error(0)
}

// newTestApp mirrors the server middleware stack.
func newTestApp(register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	register(app.Group("/api"))
	return app
}

func bearerFor(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := serverutils.GenerateAccessToken(userId, "user", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}
