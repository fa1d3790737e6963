package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-scribe/pkg/jwt"
)

const (
	bcryptCost       = 12
	sessionKeyPrefix = "session:"
)

// Service handles email/password authentication and session lifecycle.
// Refresh tokens are never stored raw: only their SHA-256 hash goes into
// the session store, keyed with a TTL matching the token expiry.
type Service struct {
	userRepo   repositories.UserRepository
	sessions   cache.Store
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

// NewService creates a new auth service
func NewService(userRepo repositories.UserRepository, sessions cache.Store, jwtManager *jwt.Manager, logger *zap.Logger) *Service {
	return &Service{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// TokenPair carries the issued tokens and access expiry in seconds
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// AuthResult is returned by signup and login
type AuthResult struct {
	User   *entities.PublicUser `json:"user"`
	Tokens TokenPair            `json:"tokens"`
}

// Signup registers a new user and opens a session
func (s *Service) Signup(ctx context.Context, email, password string, name *string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrUserAlreadyExists(email)
	} else if err != entities.ErrUserNotFound {
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperrors.ErrInternal(fmt.Errorf("hash password: %w", err))
	}

	user := entities.NewUser(email, string(hash), name)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	tokens, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user.ToPublic(), Tokens: *tokens}, nil
}

// Login authenticates a user by email and password
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == entities.ErrUserNotFound {
			// Same error as a wrong password, so the response does not
			// reveal whether the account exists.
			return nil, apperrors.ErrInvalidCredentials()
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials()
	}

	tokens, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user.ToPublic(), Tokens: *tokens}, nil
}

// Me returns the authenticated user's public profile
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*entities.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == entities.ErrUserNotFound {
			return nil, apperrors.ErrUserNotFound()
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return user.ToPublic(), nil
}

// Refresh rotates a refresh token and issues a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken()
	}

	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken()
	}

	storedUserID, found, err := s.sessions.Get(ctx, sessionKeyPrefix+hash)
	if err != nil {
		return nil, apperrors.ErrCacheFailed("get session", err)
	}
	if !found || storedUserID != userID.String() {
		return nil, apperrors.ErrInvalidRefreshToken()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == entities.ErrUserNotFound {
			return nil, apperrors.ErrUserNotFound()
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	// Rotate: invalidate the presented token before issuing a new one
	if err := s.sessions.Delete(ctx, sessionKeyPrefix+hash); err != nil {
		return nil, apperrors.ErrCacheFailed("delete session", err)
	}

	return s.openSession(ctx, user)
}

// Logout revokes the session bound to the given refresh token. A token
// that is already invalid or expired is treated as logged out.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionKeyPrefix+hash); err != nil {
		return apperrors.ErrCacheFailed("delete session", err)
	}
	return nil
}

// ValidateAccessToken parses an access token and returns its claims
func (s *Service) ValidateAccessToken(token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken()
	}
	return claims, nil
}

func (s *Service) openSession(ctx context.Context, user *entities.User) (*TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.ErrInternal(fmt.Errorf("generate access token: %w", err))
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.ErrInternal(fmt.Errorf("generate refresh token: %w", err))
	}

	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	if err := s.sessions.Set(ctx, sessionKeyPrefix+hash, user.ID.String(), s.jwtManager.GetRefreshExpiry()); err != nil {
		return nil, apperrors.ErrCacheFailed("set session", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry() / time.Second),
	}, nil
}
