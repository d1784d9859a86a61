package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/domain/referral"
	"github.com/flowva/rewards-api/internal/domain/user"
	"github.com/flowva/rewards-api/internal/pkg/jwt"
	"github.com/flowva/rewards-api/internal/pkg/logger"
	"github.com/flowva/rewards-api/internal/pkg/metrics"
	"github.com/flowva/rewards-api/internal/pkg/password"
)

const (
	// SignupBonus is credited to every new account
	SignupBonus            = 10
	signupBonusDescription = "Welcome bonus for signing up!"

	referralCodeAttempts = 5
)

// UserReader loads accounts
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// ReferralCompleter credits the referrer of a new account
type ReferralCompleter interface {
	CompleteReferral(ctx context.Context, code string, referredUserID uuid.UUID) error
}

// Service handles authentication business logic
type Service struct {
	users      UserReader
	accounts   AccountStore
	referrals  ReferralCompleter
	jwtService *jwt.Service
	tokens     TokenStore
	metrics    *metrics.Metrics
}

// NewService creates auth service
func NewService(users UserReader, accounts AccountStore, referrals ReferralCompleter, jwtService *jwt.Service, tokens TokenStore, m *metrics.Metrics) *Service {
	return &Service{
		users:      users,
		accounts:   accounts,
		referrals:  referrals,
		jwtService: jwtService,
		tokens:     tokens,
		metrics:    m,
	}
}

// Register creates the account, its streak row and the signup bonus in one
// transaction, then completes the referral if a code was given. A failed
// referral never fails the signup.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ledger.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  defaultDisplayName(req.DisplayName, email),
		Role:         user.RoleUser,
	}
	if err := s.createAccount(ctx, u); err != nil {
		return nil, err
	}

	s.metrics.Awarded(string(ledger.KindSignup), SignupBonus)
	log := logger.FromContext(ctx)
	log.Info().Str("user_id", u.ID.String()).Msg("User registered")

	if code := normalizeReferralCode(req.ReferralCode); code != "" && s.referrals != nil {
		if err := s.referrals.CompleteReferral(ctx, code, u.ID); err != nil {
			event := log.Error()
			if errors.Is(err, ledger.ErrNotFound) || errors.Is(err, referral.ErrDuplicateReferral) {
				event = log.Warn()
			}
			event.
				Err(err).
				Str("user_id", u.ID.String()).
				Str("referral_code", code).
				Msg("Referral not completed")
		}
	}

	return s.generateTokens(ctx, u)
}

func (s *Service) createAccount(ctx context.Context, u *user.User) error {
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		u.ReferralCode = user.NewReferralCode(u.Email)
		bonus := ledger.NewTransaction(u.ID, ledger.KindSignup, SignupBonus, signupBonusDescription)

		err := s.accounts.CreateAccount(ctx, u, bonus)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, user.ErrReferralCodeTaken):
			continue
		case errors.Is(err, user.ErrEmailAlreadyExists):
			return ErrEmailAlreadyExists
		default:
			return fmt.Errorf("register: %w", err)
		}
	}
	return ErrReferralCodeExhausted
}

// Login authenticates user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokens(ctx, u)
}

// Refresh rotates a refresh token and issues a new pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	userID, err := s.tokens.Consume(ctx, jwt.HashRefreshToken(refreshToken))
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.generateTokens(ctx, u)
}

// Logout invalidates refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.Delete(ctx, jwt.HashRefreshToken(refreshToken))
}

// GetCurrentUser returns current user by ID
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	if userID == uuid.Nil {
		return nil, ledger.ErrAuthenticationRequired
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := NewUserResponse(u)
	return &resp, nil
}

// generateTokens creates access and refresh tokens
func (s *Service) generateTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	// Store hash(refresh), return raw refresh to client
	if err := s.tokens.Save(ctx, jwt.HashRefreshToken(refreshToken), u.ID, s.jwtService.GetRefreshTTL()); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: NewUserResponse(u),
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int(s.jwtService.GetAccessTTL().Seconds()),
			TokenType:    "Bearer",
		},
	}, nil
}
