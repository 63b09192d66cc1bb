// Package auth implements accounts and token-based authentication:
// registration, login, refresh-token rotation with revocation, and
// password changes.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/lajournal/lajournal/internal/database"
	"github.com/lajournal/lajournal/internal/models"
)

// Service defines all account and token operations
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Invalidate(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	Me(ctx context.Context, userID int) (*models.User, error)

	// VerifyAccess validates an access token and returns the user ID it
	// was issued for. Used by the HTTP auth middleware.
	VerifyAccess(tokenString string) (int, error)
}

// RegisterRequest encapsulates data for creating an account
type RegisterRequest struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Config carries the token-signing parameters.
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// service implements Service interface
type service struct {
	repo       database.DataStore
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewService creates a new auth service
func NewService(repo database.DataStore, cfg Config) Service {
	return &service{
		repo:       repo,
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

// Register creates a new account with a bcrypt-hashed password
func (s *service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, ErrEmptyUsername
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	_, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, req.Username, req.Email, req.FirstName, req.LastName, string(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a fresh token pair
func (s *service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(ctx, user.ID)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued. Revoked, expired and unknown tokens are rejected.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}
	if rec.Revoked || s.now().After(rec.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	if err := s.repo.RevokeRefreshToken(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issuePair(ctx, rec.UserID)
}

// Invalidate blacklists the presented refresh token
func (s *service) Invalidate(ctx context.Context, refreshToken string) error {
	claims, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return err
	}
	if err := s.repo.RevokeRefreshToken(ctx, claims.ID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// ChangePassword verifies the current password, applies the strength
// policy to the new one, and revokes every outstanding refresh token so
// stolen sessions die with the old password.
func (s *service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrPasswordIncorrect
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.UpdateUserPassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.repo.RevokeAllRefreshTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// Me retrieves the authenticated user's profile
func (s *service) Me(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// VerifyAccess validates an access token and returns the user ID
func (s *service) VerifyAccess(tokenString string) (int, error) {
	claims, err := s.parseToken(tokenString, tokenTypeAccess)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// issuePair signs a new access/refresh pair and records the refresh JTI
func (s *service) issuePair(ctx context.Context, userID int) (*TokenPair, error) {
	access, err := s.signToken(userID, tokenTypeAccess, "", s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	jti := newJTI()
	refresh, err := s.signToken(userID, tokenTypeRefresh, jti, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := s.repo.SaveRefreshToken(ctx, jti, userID, s.now().Add(s.refreshTTL)); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// validatePassword applies the strength policy: minimum length and not
// entirely numeric.
func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return ErrPasswordNumeric
	}
	return nil
}
