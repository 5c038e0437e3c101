package service

import (
	"context"
	"encoding/json"
	"time"

	"cassie-be/internal/constant"
	"cassie-be/internal/entity"
	"cassie-be/internal/pkg/logger"
	"cassie-be/internal/repository/unitofwork"
	"cassie-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const consumerModule = "ProgressConsumer"

// StreakMilestone is the streak interval that triggers a JOURNAL_STREAK event.
const StreakMilestone = 7

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService advances program day and streak for saved journal entries.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload JournalEntrySavedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Dropping malformed message", map[string]interface{}{"error": err})
		msg.Ack()
		return
	}

	if err := cs.applyEntry(ctx, payload.UserId, payload.CreatedAt); err != nil {
		cs.logger.Error(consumerModule, "Failed to advance progress", map[string]interface{}{
			"error":   err,
			"user_id": payload.UserId.String(),
		})
		msg.Nack()
		return
	}
	msg.Ack()
}

func (cs *consumerService) applyEntry(ctx context.Context, userId uuid.UUID, at time.Time) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.OnboardingProfileRepository()
	profile, err := repo.FindByUserId(ctx, userId)
	if err != nil {
		return err
	}
	if profile == nil {
		cs.logger.Warn(consumerModule, "No profile for journal entry", map[string]interface{}{"user_id": userId.String()})
		return nil
	}

	next := advanceProgress(profile, at, constant.TotalDaysForPlan(profile.PlanId))
	previousStreak := profile.Streak
	if next.Advanced || profile.LastEntryDate == nil {
		entryAt := at.UTC()
		profile.LastEntryDate = &entryAt
	}
	profile.CurrentDay = next.Day
	profile.Streak = next.Streak

	if err := repo.Save(ctx, profile); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if isStreakMilestone(previousStreak, profile) {
		publishEvent(ctx, cs.publisher, cs.logger, consumerModule, events.New(events.TypeJournalStreak, map[string]interface{}{
			"user_id": userId.String(),
			"streak":  profile.Streak,
			"day":     profile.CurrentDay,
		}))
	}
	return nil
}

func isStreakMilestone(previous int, p *entity.OnboardingProfile) bool {
	return p.Streak > previous && p.Streak%StreakMilestone == 0
}
