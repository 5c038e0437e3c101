package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cassie-be/internal/dto"
	"cassie-be/internal/entity"
	"cassie-be/internal/pkg/logger"
	"cassie-be/internal/pkg/mailer"
	"cassie-be/internal/pkg/serverutils"
	"cassie-be/internal/repository/specification"
	"cassie-be/internal/repository/unitofwork"
	"cassie-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	authModule = "AuthService"

	minPasswordLength      = 6
	accessTokenTTL         = 24 * time.Hour
	refreshTokenTTL        = 30 * 24 * time.Hour
	verificationTokenTTL   = 24 * time.Hour
	defaultConfirmPagePath = "/auth/confirm"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) error
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	publisher    events.Publisher
	frontendURL  string
	logger       logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	publisher events.Publisher,
	frontendURL string,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		emailService: emailService,
		publisher:    publisher,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		logger:       log,
	}
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Register creates the account, an empty onboarding profile and a
// verification token in one transaction, then signs the user in.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	if len(req.Password) < minPasswordLength {
		return nil, dto.NewValidationError("password", "Password must be at least 6 characters")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, dto.NewValidationError("email", "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	now := time.Now().UTC()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: &hashStr,
		Role:         entity.UserRoleUser,
		Status:       entity.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	rawToken, err := randomToken()
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.OnboardingProfileRepository().Create(ctx, &entity.OnboardingProfile{UserId: user.Id, CurrentDay: 1}); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().CreateEmailVerificationToken(ctx, &entity.EmailVerificationToken{
		UserId:    user.Id,
		Token:     rawToken,
		ExpiresAt: now.Add(verificationTokenTTL),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(ctx, uow, user, true, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	link := s.confirmationLink(req.RedirectUrl, rawToken)
	go func() {
		if err := s.emailService.SendConfirmationLink(user.Email, user.FullName, link); err != nil {
			s.logger.Error(authModule, "Failed to send confirmation email", map[string]interface{}{"error": err, "user_id": user.Id.String()})
		}
	}()

	publishEvent(ctx, s.publisher, s.logger, authModule, events.New(events.TypeUserRegistered, map[string]interface{}{
		"user_id":   user.Id.String(),
		"full_name": user.FullName,
	}))

	return resp, nil
}

func (s *authService) confirmationLink(redirectURL, token string) string {
	base := redirectURL
	if base == "" {
		base = s.frontendURL + defaultConfirmPagePath
	}
	u, err := url.Parse(base)
	if err != nil {
		return base + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *authService) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	token, err := uow.UserRepository().FindEmailVerificationToken(ctx, specification.ByToken{Token: req.Token})
	if err != nil {
		return err
	}
	if token == nil {
		return dto.NewValidationError("token", "invalid confirmation link")
	}
	if token.Expired(time.Now()) {
		return dto.NewValidationError("token", "confirmation link expired")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().ActivateUser(ctx, token.UserId); err != nil {
		return err
	}
	if err := uow.UserRepository().DeleteEmailVerificationToken(ctx, token.Id); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, &dto.AuthError{Message: "Invalid login credentials"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &dto.AuthError{Message: "Invalid login credentials"}
	}
	if user.IsBlocked() {
		return nil, &dto.AuthError{Message: "User account is blocked"}
	}

	return s.issueTokens(ctx, uow, user, req.RememberMe, ipAddress, userAgent)
}

// issueTokens signs an access token and, when withRefresh is set, stores a
// hashed refresh token through uow.
func (s *authService) issueTokens(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, withRefresh bool, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	accessToken, err := serverutils.GenerateAccessToken(user.Id, string(user.Role), accessTokenTTL)
	if err != nil {
		return nil, err
	}

	var rawRefresh string
	if withRefresh {
		rawRefresh, err = randomToken()
		if err != nil {
			return nil, err
		}
		if err := uow.UserRepository().CreateRefreshToken(ctx, &entity.UserRefreshToken{
			UserId:    user.Id,
			TokenHash: hashToken(rawRefresh),
			ExpiresAt: time.Now().Add(refreshTokenTTL),
			CreatedAt: time.Now(),
			IpAddress: ipAddress,
			UserAgent: userAgent,
		}); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		User:         toUserDTO(user),
	}, nil
}

// Refresh rotates a session: the presented token is revoked and a new
// pair is issued in the same transaction.
func (s *authService) Refresh(ctx context.Context, refreshToken, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	invalid := &dto.AuthError{Message: "Session expired, please log in again"}
	hash := hashToken(refreshToken)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.UserRepository().FindRefreshToken(ctx, specification.ByTokenHash{Hash: hash})
	if err != nil {
		return nil, err
	}
	if stored == nil || !stored.Usable(time.Now()) {
		return nil, invalid
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: stored.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, invalid
	}
	if user.IsBlocked() {
		return nil, &dto.AuthError{Message: "User account is blocked"}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	revoked, err := uow.UserRepository().RevokeRefreshToken(ctx, hash)
	if err != nil {
		return nil, err
	}
	if !revoked {
		return nil, invalid
	}
	res, err := s.issueTokens(ctx, uow, user, true, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := uow.UserRepository().RevokeRefreshToken(ctx, hashToken(refreshToken))
	return err
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, dto.ErrNotFound
	}
	res := toUserDTO(user)
	return &res, nil
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:            user.Id,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          string(user.Role),
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}
