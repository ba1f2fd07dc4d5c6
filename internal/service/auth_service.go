package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/crane-workorders/internal/auth"
	"github.com/spec-kit/crane-workorders/internal/config"
	"github.com/spec-kit/crane-workorders/internal/domain"
	"github.com/spec-kit/crane-workorders/internal/repository"
	apperrors "github.com/spec-kit/crane-workorders/pkg/util"
)

const (
	msgBadCredentials = "Incorrect username or password"
	msgInvalidToken   = "Invalid token"
)

// AuthService coordinates login, token validation, and logout.
type AuthService struct {
	users      repository.UserRepository
	sessions   auth.SessionStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	SessionStore auth.SessionStore
	Logger       *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.SessionStore,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// EnsureDefaultUser seeds the bootstrap account when it does not exist yet.
func (s *AuthService) EnsureDefaultUser(ctx context.Context, username, password string) error {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	created, err := s.users.EnsureDefault(ctx, username, hash)
	if err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}
	if created {
		s.logger.Info("default user created", zap.String("username", username))
	}
	return nil
}

// Authenticate returns the matching account, or nil when the username is
// unknown, the password does not match, or the account is disabled.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.HashedPassword, password); err != nil {
		return nil, nil
	}
	if user.Disabled {
		return nil, nil
	}
	return user, nil
}

// Login authenticates the caller and opens a new session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Token, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if user == nil {
		return nil, apperrors.NewUnauthorized(msgBadCredentials)
	}

	token, session, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("session_id", session.ID))
	return &domain.Token{AccessToken: token, TokenType: "bearer", ExpiresAt: session.ExpiresAt}, nil
}

// Validate resolves a bearer token to its live session and account. Every
// rejection carries the same message.
func (s *AuthService) Validate(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized(msgInvalidToken)
	}
	userID, _ := claims.UserID()

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return nil, apperrors.NewUnauthorized(msgInvalidToken)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if session.UserID != userID {
		return nil, apperrors.NewUnauthorized(msgInvalidToken)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized(msgInvalidToken)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if user.Disabled {
		return nil, apperrors.NewUnauthorized(msgInvalidToken)
	}
	return &auth.Principal{User: user, Session: session}, nil
}

// Logout revokes the caller's session.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil {
		return apperrors.NewUnauthorized(msgInvalidToken)
	}
	if err := s.sessions.Delete(ctx, principal.Session.ID); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("user logged out", zap.Int64("user_id", principal.User.ID), zap.String("session_id", principal.Session.ID))
	return nil
}

// TokenTTL reports the lifetime of issued tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenMgr.TTL()
}
