package database

import (
	"context"
	"time"

	"github.com/lajournal/lajournal/internal/models"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, username, email, firstName, lastName, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID int, passwordHash string) error
}

// TokenRepository defines the refresh-token bookkeeping operations.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, jti string, userID int, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, jti string) (*RefreshTokenRecord, error)
	RevokeRefreshToken(ctx context.Context, jti string) error
	RevokeAllRefreshTokens(ctx context.Context, userID int) error
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error
}
