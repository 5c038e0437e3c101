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
	"cassie-be/pkg/journal"

	"github.com/google/uuid"
)

const journalModule = "JournalService"

// JournalEntrySavedMessage is the watermill payload consumed by the progress consumer.
type JournalEntrySavedMessage struct {
	UserId    uuid.UUID `json:"user_id"`
	EntryId   uuid.UUID `json:"entry_id"`
	CreatedAt time.Time `json:"created_at"`
}

type IJournalService interface {
	CurrentPrompt(ctx context.Context, userId uuid.UUID) (*dto.JournalPromptResponse, error)
	NewPrompt(ctx context.Context, userId uuid.UUID, category string) (*dto.JournalPromptResponse, error)
	CreateEntry(ctx context.Context, userId uuid.UUID, req *dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error)
	ListEntries(ctx context.Context, userId uuid.UUID) ([]dto.JournalEntryResponse, error)
}

type journalService struct {
	uowFactory        unitofwork.RepositoryFactory
	onboardingService IOnboardingService
	publisherService  IPublisherService
	picker            *journal.Picker
	logger            logger.ILogger
	now               func() time.Time
}

func NewJournalService(
	uowFactory unitofwork.RepositoryFactory,
	onboardingService IOnboardingService,
	publisherService IPublisherService,
	picker *journal.Picker,
	log logger.ILogger,
) IJournalService {
	if picker == nil {
		picker = journal.NewPicker(nil)
	}
	return &journalService{
		uowFactory:        uowFactory,
		onboardingService: onboardingService,
		publisherService:  publisherService,
		picker:            picker,
		logger:            log,
		now:               time.Now,
	}
}

func (s *journalService) CurrentPrompt(ctx context.Context, userId uuid.UUID) (*dto.JournalPromptResponse, error) {
	profile, err := s.onboardingService.RequireComplete(ctx, userId)
	if err != nil {
		return nil, err
	}

	totalDays := constant.TotalDaysForPlan(profile.PlanId)
	day := advanceProgress(profile, s.now(), totalDays).Day
	prompt := s.picker.ForDay(day, profile.RecipientName)

	return &dto.JournalPromptResponse{
		Day:       day,
		TotalDays: totalDays,
		Category:  string(prompt.Category),
		Prompt:    prompt.Text,
	}, nil
}

// NewPrompt redraws from category, or from the day's category when it is empty.
func (s *journalService) NewPrompt(ctx context.Context, userId uuid.UUID, category string) (*dto.JournalPromptResponse, error) {
	profile, err := s.onboardingService.RequireComplete(ctx, userId)
	if err != nil {
		return nil, err
	}

	totalDays := constant.TotalDaysForPlan(profile.PlanId)
	day := advanceProgress(profile, s.now(), totalDays).Day

	c := journal.CategoryForDay(day)
	if category != "" {
		c, err = journal.ParseCategory(category)
		if err != nil {
			return nil, dto.NewValidationError("category", "Unknown prompt category")
		}
	}

	prompt, err := s.picker.Draw(c, profile.RecipientName)
	if err != nil {
		return nil, dto.NewValidationError("category", "Unknown prompt category")
	}

	return &dto.JournalPromptResponse{
		Day:       day,
		TotalDays: totalDays,
		Category:  string(prompt.Category),
		Prompt:    prompt.Text,
	}, nil
}

func (s *journalService) CreateEntry(ctx context.Context, userId uuid.UUID, req *dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, dto.NewValidationError("content", "Journal entry cannot be empty")
	}

	profile, err := s.onboardingService.RequireComplete(ctx, userId)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	day := advanceProgress(profile, now, constant.TotalDaysForPlan(profile.PlanId)).Day

	category := journal.CategoryForDay(day)
	if req.Category != "" {
		category, err = journal.ParseCategory(req.Category)
		if err != nil {
			return nil, dto.NewValidationError("category", "Unknown prompt category")
		}
	}

	entry := &entity.JournalEntry{
		UserId:    userId,
		Day:       day,
		Category:  string(category),
		Prompt:    strings.TrimSpace(req.Prompt),
		Content:   content,
		WordCount: journal.WordCount(content),
		CreatedAt: now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.JournalEntryRepository().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrStorage, err)
	}

	msg := JournalEntrySavedMessage{UserId: userId, EntryId: entry.Id, CreatedAt: entry.CreatedAt}
	if err := s.publisherService.Publish(ctx, msg); err != nil {
		s.logger.Error(journalModule, "Failed to queue progress update", map[string]interface{}{
			"error":    err,
			"entry_id": entry.Id.String(),
		})
	}

	resp := toJournalEntryResponse(entry)
	return &resp, nil
}

func (s *journalService) ListEntries(ctx context.Context, userId uuid.UUID) ([]dto.JournalEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.JournalEntryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrStorage, err)
	}

	res := make([]dto.JournalEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toJournalEntryResponse(e))
	}
	return res, nil
}

func toJournalEntryResponse(e *entity.JournalEntry) dto.JournalEntryResponse {
	return dto.JournalEntryResponse{
		Id:        e.Id,
		Day:       e.Day,
		Category:  e.Category,
		Prompt:    e.Prompt,
		Content:   e.Content,
		WordCount: e.WordCount,
		CreatedAt: e.CreatedAt,
	}
}

type progress struct {
	Day    int
	Streak int
	// Advanced is false when the entry falls on the same calendar day as the last one.
	Advanced bool
}

// advanceProgress computes the program day and streak after an entry written at.
// Days are UTC calendar days. The first entry opens day 1 with a streak of 1.
// Each new calendar day moves the program one day forward, capped at totalDays;
// the streak grows when the previous entry was yesterday and restarts otherwise.
func advanceProgress(p *entity.OnboardingProfile, at time.Time, totalDays int) progress {
	day := p.CurrentDay
	if day < 1 {
		day = 1
	}
	if p.LastEntryDate == nil {
		return progress{Day: day, Streak: 1, Advanced: true}
	}

	last := calendarDay(*p.LastEntryDate)
	today := calendarDay(at)
	if !today.After(last) {
		streak := p.Streak
		if streak < 1 {
			streak = 1
		}
		return progress{Day: day, Streak: streak}
	}

	day++
	if totalDays > 0 && day > totalDays {
		day = totalDays
	}
	streak := 1
	if today.Equal(last.AddDate(0, 0, 1)) {
		streak = p.Streak + 1
	}
	return progress{Day: day, Streak: streak, Advanced: true}
}

func calendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
