package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"cassie-be/internal/constant"
	"cassie-be/internal/dto"
	"cassie-be/internal/entity"
	"cassie-be/internal/pkg/logger"
	"cassie-be/internal/repository/memory"
	"cassie-be/internal/repository/specification"
	"cassie-be/internal/repository/unitofwork"
	"cassie-be/pkg/events"
	"cassie-be/pkg/llm"

	"golang.org/x/sync/singleflight"
)

const replyModule = "ReplyService"

type IReplyService interface {
	// Reply runs one request/response cycle against the completion API and,
	// for site conversations, appends both turns to the site's history.
	Reply(ctx context.Context, req *dto.ReplyRequest) (*dto.ReplyResponse, error)
	ResolveSystemContext(ctx context.Context, siteId, explicit *string) (string, error)
	History(ctx context.Context, siteId string) (*dto.ChatHistoryResponse, error)
}

// ReplyConfig holds the sampling parameters. Zero values take the chat defaults;
// Temperature is a pointer so an explicit 0 stays distinguishable from unset.
type ReplyConfig struct {
	Model       string
	MaxTokens   int
	Temperature *float64
}

type replyService struct {
	uowFactory  unitofwork.RepositoryFactory
	llm         llm.LLMProvider
	publisher   events.Publisher
	idempotency memory.IdempotencyStore
	inflight    singleflight.Group
	cfg         ReplyConfig
	logger      logger.ILogger
	now         func() time.Time
}

func NewReplyService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	publisher events.Publisher,
	idempotency memory.IdempotencyStore,
	cfg ReplyConfig,
	log logger.ILogger,
) IReplyService {
	if cfg.Model == "" {
		cfg.Model = constant.DefaultChatModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = constant.DefaultChatMaxTokens
	}
	if cfg.Temperature == nil {
		temp := constant.DefaultChatTemp
		cfg.Temperature = &temp
	}
	return &replyService{
		uowFactory:  uowFactory,
		llm:         provider,
		publisher:   publisher,
		idempotency: idempotency,
		cfg:         cfg,
		logger:      log,
		now:         time.Now,
	}
}

func (s *replyService) Reply(ctx context.Context, req *dto.ReplyRequest) (*dto.ReplyResponse, error) {
	if req == nil || req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", dto.ErrInvalidRequest)
	}

	if req.IdempotencyKey == "" || s.idempotency == nil {
		return s.generate(ctx, req)
	}

	key := idempotencyKey(req)
	if reply, found, err := s.idempotency.Get(ctx, key); err != nil {
		s.logger.Warn(replyModule, "Idempotency lookup failed", map[string]interface{}{"error": err, "key": key})
	} else if found {
		return &dto.ReplyResponse{Reply: reply}, nil
	}

	// Concurrent duplicates share the first caller's result
	v, err, _ := s.inflight.Do(key, func() (interface{}, error) {
		resp, err := s.generate(ctx, req)
		if err != nil {
			return nil, err
		}
		if setErr := s.idempotency.Set(ctx, key, resp.Reply); setErr != nil {
			s.logger.Warn(replyModule, "Failed to remember reply", map[string]interface{}{"error": setErr, "key": key})
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.ReplyResponse), nil
}

// idempotencyKey scopes the client key by site and message, so reusing a key
// for a different message starts a new cycle instead of replaying.
func idempotencyKey(req *dto.ReplyRequest) string {
	site := "-"
	if req.SiteId != nil && *req.SiteId != "" {
		site = *req.SiteId
	}
	sum := sha256.Sum256([]byte(req.Message))
	return site + ":" + req.IdempotencyKey + ":" + hex.EncodeToString(sum[:8])
}

func (s *replyService) generate(ctx context.Context, req *dto.ReplyRequest) (*dto.ReplyResponse, error) {
	systemContext, err := s.ResolveSystemContext(ctx, req.SiteId, req.Context)
	if err != nil {
		s.logger.Error(replyModule, "Failed to resolve site context", map[string]interface{}{"error": err})
		return nil, err
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: systemContext},
		{Role: llm.RoleUser, Content: req.Message},
	}
	reply, err := s.llm.Chat(ctx, history,
		llm.WithModel(s.cfg.Model),
		llm.WithMaxTokens(s.cfg.MaxTokens),
		llm.WithTemperature(*s.cfg.Temperature),
	)
	if err != nil {
		s.logger.Error(replyModule, "Completion request failed", map[string]interface{}{"error": err})
		return nil, fmt.Errorf("%w: %w", dto.ErrUpstream, err)
	}
	if reply == "" {
		reply = constant.FallbackReply
	}

	siteId := ""
	if req.SiteId != nil {
		siteId = *req.SiteId
	}

	if siteId != "" {
		if err := s.appendTurns(ctx, siteId, req.Message, reply); err != nil {
			s.logger.Error(replyModule, "Reply generated but not persisted", map[string]interface{}{
				"error":   err,
				"site_id": siteId,
			})
			return nil, fmt.Errorf("%w: %w", dto.ErrNotPersisted, err)
		}
	}

	publishEvent(ctx, s.publisher, s.logger, replyModule, events.New(events.TypeChatReplyGenerated, map[string]interface{}{
		"site_id":   siteId,
		"persisted": siteId != "",
	}))

	return &dto.ReplyResponse{Reply: reply}, nil
}

// appendTurns stores the user turn and the assistant turn in one transaction.
// The assistant row is stamped one microsecond after the user row so the
// append order survives a created_at sort.
func (s *replyService) appendTurns(ctx context.Context, siteId, message, reply string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	at := s.now().UTC().Truncate(time.Microsecond)
	turns := []*entity.ChatMessage{
		{SiteId: siteId, Role: entity.ChatRoleUser, Content: message, CreatedAt: at},
		{SiteId: siteId, Role: entity.ChatRoleAssistant, Content: reply, CreatedAt: at.Add(time.Microsecond)},
	}
	if err := uow.ChatMessageRepository().CreateBatch(ctx, turns); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *replyService) ResolveSystemContext(ctx context.Context, siteId, explicit *string) (string, error) {
	if explicit != nil && *explicit != "" {
		return *explicit, nil
	}

	if siteId != nil && *siteId != "" {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		generated, err := uow.GeneratedContextRepository().FindBySiteId(ctx, *siteId)
		if err != nil {
			return "", fmt.Errorf("%w: %w", dto.ErrStorage, err)
		}
		if text := generated.SelectedText(); text != "" {
			return text, nil
		}
	}

	return constant.DefaultPersonaContext, nil
}

func (s *replyService) History(ctx context.Context, siteId string) (*dto.ChatHistoryResponse, error) {
	siteId = strings.TrimSpace(siteId)
	if siteId == "" {
		return nil, dto.NewValidationError("site_id", "site_id is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySiteID{SiteID: siteId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrStorage, err)
	}

	resp := &dto.ChatHistoryResponse{SiteId: siteId, Messages: make([]dto.ChatMessageResponse, 0, len(messages))}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, dto.ChatMessageResponse{
			Id:        m.Id,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return resp, nil
}
