package service

import (
	"context"
	"fmt"
	"strings"

	"cassie-be/internal/constant"
	"cassie-be/internal/dto"
	"cassie-be/internal/pkg/logger"
	"cassie-be/internal/repository/specification"
	"cassie-be/internal/repository/unitofwork"
	"cassie-be/pkg/journal"

	"github.com/google/uuid"
)

const coachModule = "CoachService"

type ICoachService interface {
	Intro(ctx context.Context, userId uuid.UUID) (*dto.CoachIntroResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.CoachMessageRequest) (*dto.CoachMessageResponse, error)
}

type coachService struct {
	uowFactory        unitofwork.RepositoryFactory
	onboardingService IOnboardingService
	replyService      IReplyService
	logger            logger.ILogger
}

func NewCoachService(
	uowFactory unitofwork.RepositoryFactory,
	onboardingService IOnboardingService,
	replyService IReplyService,
	log logger.ILogger,
) ICoachService {
	return &coachService{
		uowFactory:        uowFactory,
		onboardingService: onboardingService,
		replyService:      replyService,
		logger:            log,
	}
}

func (s *coachService) Intro(ctx context.Context, userId uuid.UUID) (*dto.CoachIntroResponse, error) {
	profile, err := s.onboardingService.RequireComplete(ctx, userId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrStorage, err)
	}
	name := greetingName(user)

	prompts := make([]string, len(constant.CoachQuickPrompts))
	copy(prompts, constant.CoachQuickPrompts)

	return &dto.CoachIntroResponse{
		Greeting:     fmt.Sprintf(constant.CoachGreetingTemplate, name, recipientOrDefault(profile.RecipientName)),
		QuickPrompts: prompts,
	}, nil
}

// SendMessage asks the completion API in coach voice. No site id is passed,
// so coach conversations are never stored.
func (s *coachService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.CoachMessageRequest) (*dto.CoachMessageResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, dto.NewValidationError("message", constant.ErrMessageRequired)
	}

	profile, err := s.onboardingService.RequireComplete(ctx, userId)
	if err != nil {
		return nil, err
	}

	coachContext := fmt.Sprintf(constant.CoachContextTemplate, recipientOrDefault(profile.RecipientName))
	resp, err := s.replyService.Reply(ctx, &dto.ReplyRequest{
		Message: message,
		Context: &coachContext,
	})
	if err != nil {
		s.logger.Error(coachModule, "Coach reply failed", map[string]interface{}{"error": err, "user_id": userId.String()})
		return nil, err
	}

	reply := strings.TrimSpace(resp.Reply)
	if reply == "" {
		reply = constant.CoachEmptyReply
	}
	return &dto.CoachMessageResponse{Reply: reply}, nil
}

func recipientOrDefault(name string) string {
	if strings.TrimSpace(name) == "" {
		return journal.DefaultRecipient
	}
	return name
}
