package mapper

import (
	"cassie-be/internal/entity"
	"cassie-be/internal/model"
)

type JourneyMapper struct{}

func NewJourneyMapper() *JourneyMapper {
	return &JourneyMapper{}
}

func (m *JourneyMapper) ProfileToEntity(p *model.OnboardingProfile) *entity.OnboardingProfile {
	if p == nil {
		return nil
	}
	return &entity.OnboardingProfile{
		UserId:        p.UserId,
		PlanId:        p.PlanId,
		RecipientName: p.RecipientName,
		StartedAt:     p.StartedAt,
		CurrentDay:    p.CurrentDay,
		Streak:        p.Streak,
		LastEntryDate: p.LastEntryDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *JourneyMapper) ProfileToModel(p *entity.OnboardingProfile) *model.OnboardingProfile {
	if p == nil {
		return nil
	}
	return &model.OnboardingProfile{
		UserId:        p.UserId,
		PlanId:        p.PlanId,
		RecipientName: p.RecipientName,
		StartedAt:     p.StartedAt,
		CurrentDay:    p.CurrentDay,
		Streak:        p.Streak,
		LastEntryDate: p.LastEntryDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *JourneyMapper) JournalEntryToEntity(e *model.JournalEntry) *entity.JournalEntry {
	if e == nil {
		return nil
	}
	return &entity.JournalEntry{
		Id:        e.Id,
		UserId:    e.UserId,
		Day:       e.Day,
		Category:  e.Category,
		Prompt:    e.Prompt,
		Content:   e.Content,
		WordCount: e.WordCount,
		CreatedAt: e.CreatedAt,
	}
}

func (m *JourneyMapper) JournalEntryToModel(e *entity.JournalEntry) *model.JournalEntry {
	if e == nil {
		return nil
	}
	return &model.JournalEntry{
		Id:        e.Id,
		UserId:    e.UserId,
		Day:       e.Day,
		Category:  e.Category,
		Prompt:    e.Prompt,
		Content:   e.Content,
		WordCount: e.WordCount,
		CreatedAt: e.CreatedAt,
	}
}

func (m *JourneyMapper) PlanOrderToEntity(o *model.PlanOrder) *entity.PlanOrder {
	if o == nil {
		return nil
	}
	return &entity.PlanOrder{
		Id:                    o.Id,
		UserId:                o.UserId,
		PlanId:                o.PlanId,
		Amount:                o.Amount,
		Currency:              o.Currency,
		Status:                entity.OrderStatus(o.Status),
		MidtransTransactionId: o.MidtransTransactionId,
		SnapToken:             o.SnapToken,
		SnapRedirectUrl:       o.SnapRedirectUrl,
		PaidAt:                o.PaidAt,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

func (m *JourneyMapper) PlanOrderToModel(o *entity.PlanOrder) *model.PlanOrder {
	if o == nil {
		return nil
	}
	return &model.PlanOrder{
		Id:                    o.Id,
		UserId:                o.UserId,
		PlanId:                o.PlanId,
		Amount:                o.Amount,
		Currency:              o.Currency,
		Status:                string(o.Status),
		MidtransTransactionId: o.MidtransTransactionId,
		SnapToken:             o.SnapToken,
		SnapRedirectUrl:       o.SnapRedirectUrl,
		PaidAt:                o.PaidAt,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}
