package mapper

import (
	"cassie-be/internal/entity"
	"cassie-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		SiteId:    msg.SiteId,
		Role:      entity.ChatRole(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		SiteId:    msg.SiteId,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) GeneratedContextToEntity(g *model.GeneratedContext) *entity.GeneratedContext {
	if g == nil {
		return nil
	}
	return &entity.GeneratedContext{
		Id:            g.Id,
		SiteId:        g.SiteId,
		UseCustom:     g.UseCustom,
		FullContext:   g.FullContext,
		CustomContext: g.CustomContext,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func (m *ChatMapper) GeneratedContextToModel(g *entity.GeneratedContext) *model.GeneratedContext {
	if g == nil {
		return nil
	}
	return &model.GeneratedContext{
		Id:            g.Id,
		SiteId:        g.SiteId,
		UseCustom:     g.UseCustom,
		FullContext:   g.FullContext,
		CustomContext: g.CustomContext,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}
