package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"cassie-be/internal/dto"
	"cassie-be/internal/entity"
	"cassie-be/internal/pkg/testutil"
	"cassie-be/internal/repository/unitofwork"
	"cassie-be/pkg/events"
	"cassie-be/pkg/llm"
	pktNats "cassie-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockLLMProvider is a mock type for the llm.LLMProvider interface
type MockLLMProvider struct {
	mock.Mock

	optsMu   sync.Mutex
	lastOpts llm.Options
}

func (m *MockLLMProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	m.optsMu.Lock()
	m.lastOpts = llm.Apply(options...)
	m.optsMu.Unlock()
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

// LastOptions returns the options folded from the most recent Chat call.
func (m *MockLLMProvider) LastOptions() llm.Options {
	m.optsMu.Lock()
	defer m.optsMu.Unlock()
	return m.lastOpts
}

func (m *MockLLMProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockSnapGateway is a mock type for the SnapGateway interface
type MockSnapGateway struct {
	mock.Mock
}

func (m *MockSnapGateway) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	args := m.Called(req)
	var resp *snap.Response
	if r := args.Get(0); r != nil {
		resp = r.(*snap.Response)
	}
	var midErr *midtrans.Error
	if e := args.Get(1); e != nil {
		midErr = e.(*midtrans.Error)
	}
	return resp, midErr
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

// Publish is nil-safe like the NATS publisher.
func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) ofType(eventType string) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Event
	for _, e := range p.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

type recordingPublisherService struct {
	mu       sync.Mutex
	payloads []interface{}
	err      error
}

func (p *recordingPublisherService) Publish(_ context.Context, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return p.err
}

type sentMail struct {
	Kind    string
	To      string
	Subject string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) SendConfirmationLink(toEmail, fullName, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{Kind: "confirm", To: toEmail, Subject: link})
	return nil
}

func (m *recordingMailer) SendPlanReceipt(toEmail, fullName, planName string, amountCents int64, currency string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{Kind: "receipt", To: toEmail, Subject: planName})
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *recordingMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type recordingDelivery struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]dto.NotificationResponse
}

func (d *recordingDelivery) Send(userId uuid.UUID, n dto.NotificationResponse) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sent == nil {
		d.sent = make(map[uuid.UUID][]dto.NotificationResponse)
	}
	d.sent[userId] = append(d.sent[userId], n)
}

type stubSubscriber struct {
	subject string
	durable string
	handler pktNats.EventHandler
	err     error
}

func (s *stubSubscriber) Subscribe(subject string, durableName string, handler pktNats.EventHandler) error {
	s.subject = subject
	s.durable = durableName
	s.handler = handler
	return s.err
}

type fixedSource struct{ i int }

func (f fixedSource) Intn(n int) int { return f.i % n }

func newTestFactory(t *testing.T) (unitofwork.RepositoryFactory, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return unitofwork.NewRepositoryFactory(db), db
}

// seedUser stores an active user with the given onboarding profile.
func seedUser(t *testing.T, factory unitofwork.RepositoryFactory, fullName string, profile *entity.OnboardingProfile) *entity.User {
	t.Helper()
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)

	now := time.Now().UTC()
	user := &entity.User{
		Id:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		FullName:  fullName,
		Role:      entity.UserRoleUser,
		Status:    entity.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))

	if profile != nil {
		profile.UserId = user.Id
		if profile.CurrentDay == 0 {
			profile.CurrentDay = 1
		}
		require.NoError(t, uow.OnboardingProfileRepository().Create(ctx, profile))
	}
	return user
}

func loadProfile(t *testing.T, factory unitofwork.RepositoryFactory, userId uuid.UUID) *entity.OnboardingProfile {
	t.Helper()
	ctx := context.Background()
	p, err := factory.NewUnitOfWork(ctx).OnboardingProfileRepository().FindByUserId(ctx, userId)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func ptr[T any](v T) *T {
	return &v
}
