package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"cassie-be/internal/dto"
	"cassie-be/internal/entity"
	"cassie-be/internal/pkg/logger"
	"cassie-be/internal/pkg/serverutils"
	"cassie-be/internal/repository/specification"
	"cassie-be/internal/repository/unitofwork"
	"cassie-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthServiceForTest(factory unitofwork.RepositoryFactory, mailer *recordingMailer, pub *recordingPublisher) IAuthService {
	return NewAuthService(factory, mailer, pub, "https://app.example.com/", logger.NewNopLogger())
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{FullName: "Dana Lee", Email: "  Dana@Example.com ", Password: "secret123"}
}

func TestAuth_RegisterSignsInAndMailsConfirmation(t *testing.T) {
	factory, _ := newTestFactory(t)
	mailer := &recordingMailer{}
	pub := &recordingPublisher{}
	svc := newAuthServiceForTest(factory, mailer, pub)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest(), "127.0.0.1", "test")

	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.RefreshToken)
	userId, err := serverutils.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.Id, userId)

	profile := loadProfile(t, factory, userId)
	assert.Equal(t, entity.OnboardingStepPlan, profile.NextStep())

	require.Eventually(t, func() bool { return mailer.count() == 1 }, time.Second, 10*time.Millisecond)
	link, err := url.Parse(mailer.last().Subject)
	require.NoError(t, err)
	assert.Equal(t, "/auth/confirm", link.Path)
	assert.NotEmpty(t, link.Query().Get("token"))

	assert.Len(t, pub.ofType(events.TypeUserRegistered), 1)
}

func TestAuth_RegisterValidation(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := newAuthServiceForTest(factory, &recordingMailer{}, nil)
	ctx := context.Background()

	short := registerRequest()
	short.Password = "12345"
	_, err := svc.Register(ctx, short, "", "")
	var verr *dto.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Password must be at least 6 characters", verr.Message)

	_, err = svc.Register(ctx, registerRequest(), "", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, registerRequest(), "", "")
	assert.ErrorIs(t, err, dto.ErrInvalidRequest)
}

func TestAuth_VerifyEmail(t *testing.T) {
	factory, _ := newTestFactory(t)
	mailer := &recordingMailer{}
	svc := newAuthServiceForTest(factory, mailer, nil)
	ctx := context.Background()

	req := registerRequest()
	req.RedirectUrl = "https://cassie.example.com/welcome?from=mail"
	resp, err := svc.Register(ctx, req, "", "")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return mailer.count() == 1 }, time.Second, 10*time.Millisecond)
	link, err := url.Parse(mailer.last().Subject)
	require.NoError(t, err)
	assert.Equal(t, "cassie.example.com", link.Host)
	assert.Equal(t, "mail", link.Query().Get("from"))

	require.NoError(t, svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Token: link.Query().Get("token")}))

	me, err := svc.Me(ctx, resp.User.Id)
	require.NoError(t, err)
	assert.True(t, me.EmailVerified)

	err = svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Token: link.Query().Get("token")})
	assert.ErrorIs(t, err, dto.ErrInvalidRequest)
}

func TestAuth_LoginAndLogout(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := newAuthServiceForTest(factory, &recordingMailer{}, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest(), "", "")
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "dana@example.com", Password: "wrong"}, "", "")
	var authErr *dto.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "Invalid login credentials", authErr.Message)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"}, "", "")
	assert.ErrorIs(t, err, dto.ErrUnauthorized)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "Dana@example.com", Password: "secret123"}, "", "")
	require.NoError(t, err)
	assert.Empty(t, resp.RefreshToken)

	resp, err = svc.Login(ctx, &dto.LoginRequest{Email: "dana@example.com", Password: "secret123", RememberMe: true}, "10.0.0.1", "ua")
	require.NoError(t, err)
	require.NotEmpty(t, resp.RefreshToken)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))
	stored, err := factory.NewUnitOfWork(ctx).UserRepository().FindRefreshToken(ctx, specification.ByTokenHash{Hash: hashToken(resp.RefreshToken)})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Revoked)
	assert.Equal(t, "10.0.0.1", stored.IpAddress)
}

func TestAuth_BlockedUserCannotLogin(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := newAuthServiceForTest(factory, &recordingMailer{}, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest(), "", "")
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: resp.User.Id})
	require.NoError(t, err)
	user.Status = entity.UserStatusBlocked
	require.NoError(t, uow.UserRepository().Update(ctx, user))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "dana@example.com", Password: "secret123"}, "", "")
	var authErr *dto.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "User account is blocked", authErr.Message)
}

func TestAuth_RefreshRotatesSession(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := newAuthServiceForTest(factory, &recordingMailer{}, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest(), "", "")
	require.NoError(t, err)
	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "dana@example.com", Password: "secret123", RememberMe: true}, "", "")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken, "10.0.0.2", "ua")
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	require.NotEmpty(t, refreshed.RefreshToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, "dana@example.com", refreshed.User.Email)

	// The presented token is single use.
	_, err = svc.Refresh(ctx, login.RefreshToken, "", "")
	assert.ErrorIs(t, err, dto.ErrUnauthorized)

	_, err = svc.Refresh(ctx, refreshed.RefreshToken, "", "")
	assert.NoError(t, err)

	_, err = svc.Refresh(ctx, "never-issued", "", "")
	assert.ErrorIs(t, err, dto.ErrUnauthorized)
}

func TestAuth_RefreshLosesRaceToConcurrentRotation(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := newAuthServiceForTest(factory, &recordingMailer{}, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest(), "", "")
	require.NoError(t, err)
	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "dana@example.com", Password: "secret123", RememberMe: true}, "", "")
	require.NoError(t, err)

	// Another request rotates the token right after this one has read it as usable.
	armed := true
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:concurrent_rotation", func(tx *gorm.DB) {
		if !armed || tx.Statement.Table != "user_refresh_tokens" {
			return
		}
		armed = false
		require.NoError(t, db.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE user_refresh_tokens SET revoked = ? WHERE token_hash = ?", true, hashToken(login.RefreshToken)).Error)
	}))

	_, err = svc.Refresh(ctx, login.RefreshToken, "", "")

	assert.ErrorIs(t, err, dto.ErrUnauthorized)
	assert.False(t, armed)
}
