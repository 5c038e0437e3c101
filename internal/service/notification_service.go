package service

import (
	"context"
	"fmt"
	"strings"

	"cassie-be/internal/dto"
	"cassie-be/internal/entity"
	"cassie-be/internal/pkg/logger"
	"cassie-be/internal/repository/unitofwork"
	"cassie-be/pkg/events"
	pktNats "cassie-be/pkg/nats"

	"github.com/google/uuid"
)

const (
	notificationModule   = "NotificationService"
	NotificationDurable  = "cassie-notifier"
	defaultNotifPageSize = 20
	maxNotifPageSize     = 100
)

// NotificationDelivery pushes real-time updates. Implemented by the websocket hub.
type NotificationDelivery interface {
	Send(userId uuid.UUID, notification dto.NotificationResponse)
}

// EventSubscriber is satisfied by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(subject string, durableName string, handler pktNats.EventHandler) error
}

type notificationTemplate struct {
	Title   string
	Message string
}

// Event types that become user notifications. Placeholders are payload keys.
var notificationTemplates = map[string]notificationTemplate{
	events.TypePlanPaid: {
		Title:   "Your plan is active",
		Message: "Your {plan_name} plan is active. Your first prompt is waiting.",
	},
	events.TypeJournalStreak: {
		Title:   "Streak milestone",
		Message: "{streak} days in a row. Keep showing up.",
	},
}

type INotificationService interface {
	Start() error
	HandleEvent(ctx context.Context, event events.Event) error
	List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error)
	MarkAsRead(ctx context.Context, userId, notificationId uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber EventSubscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub EventSubscriber, delivery NotificationDelivery, log logger.ILogger) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start subscribes to every event with a durable consumer.
func (s *notificationService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn(notificationModule, "Event bus disabled, notifications will not be produced", nil)
		return nil
	}
	if err := s.subscriber.Subscribe(pktNats.SubjectPrefix+">", NotificationDurable, s.HandleEvent); err != nil {
		s.logger.Error(notificationModule, "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return err
	}
	s.logger.Info(notificationModule, "Notification service started", map[string]interface{}{"durable": NotificationDurable})
	return nil
}

func (s *notificationService) HandleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), pktNats.SubjectPrefix)

	tmpl, ok := notificationTemplates[typeCode]
	if !ok {
		return nil
	}

	payload := event.Payload()
	uidStr, _ := payload["user_id"].(string)
	userId, err := uuid.Parse(uidStr)
	if err != nil {
		s.logger.Warn(notificationModule, fmt.Sprintf("Event %s carries no user_id", typeCode), nil)
		return nil
	}

	notification := &entity.Notification{
		UserId:   userId,
		TypeCode: typeCode,
		Title:    tmpl.Title,
		Message:  renderTemplate(tmpl.Message, payload),
		Metadata: payload,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		s.logger.Error(notificationModule, "Error saving notification", map[string]interface{}{"error": err, "user_id": uidStr})
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userId, toNotificationResponse(notification))
	}
	return nil
}

func renderTemplate(template string, payload map[string]interface{}) string {
	msg := template
	for k, v := range payload {
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{%s}", k), fmt.Sprintf("%v", v))
	}
	return msg
}

func (s *notificationService) List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.NotificationListResponse, error) {
	if limit <= 0 {
		limit = defaultNotifPageSize
	}
	if limit > maxNotifPageSize {
		limit = maxNotifPageSize
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, total, err := uow.NotificationRepository().FindByUserId(ctx, userId, limit, offset)
	if err != nil {
		return nil, err
	}

	res := &dto.NotificationListResponse{Items: make([]dto.NotificationResponse, 0, len(items)), Total: total}
	for _, n := range items {
		res.Items = append(res.Items, toNotificationResponse(n))
	}
	return res, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error) {
	count, err := s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().CountUnread(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userId, notificationId uuid.UUID) error {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().MarkAsRead(ctx, userId, notificationId)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().MarkAllAsRead(ctx, userId)
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		Id:        n.Id,
		TypeCode:  n.TypeCode,
		Title:     n.Title,
		Message:   n.Message,
		Metadata:  n.Metadata,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
