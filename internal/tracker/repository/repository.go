package repository

import (
	"context"
	"errors"
	"time"

	"sttock-tracker/internal/entity"
	"sttock-tracker/internal/tracker/dto"
)

var (
	// ErrAPIKeyMissing signals that no Gemini credential is configured. It
	// is distinct from a generic fetch failure so callers can prompt for
	// key entry.
	ErrAPIKeyMissing = errors.New("gemini api key is not configured")

	// ErrSessionNotFound is the expected miss when no session exists for a
	// token; callers log it at debug, not warn.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUserNotFound is returned when no account matches the identifier.
	ErrUserNotFound = errors.New("user not found")

	// ErrSignUpUnsupported is returned by credential stores that cannot
	// create accounts.
	ErrSignUpUnsupported = errors.New("sign-up is not supported by this credential store")

	// ErrVerificationTokenInvalid is returned when a verification token is
	// unknown or already consumed.
	ErrVerificationTokenInvalid = errors.New("verification token is invalid or expired")
)

// WatchlistRepository is the collection store: persistence for one user's
// tracked stocks, newest first. List distinguishes a retrieval failure
// from a legitimately empty collection by its error return.
type WatchlistRepository interface {
	List(ctx context.Context, userID uint) ([]entity.Stock, error)
	Save(ctx context.Context, stock *entity.Stock) error
	Remove(ctx context.Context, userID uint, id string) error
}

// NewsRepository fetches an AI-generated news summary for a ticker symbol.
type NewsRepository interface {
	FetchStockNews(ctx context.Context, symbol string) (*dto.StockNewsResult, error)
}

// UserRepository is the credential store's account backend.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	MarkVerified(ctx context.Context, id uint) error
}

// SessionRepository persists issued sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByToken(ctx context.Context, token string) (*entity.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// VerificationRepository stores one-time email verification tokens.
type VerificationRepository interface {
	Store(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Consume(ctx context.Context, token string) (uint, error)
}
