package repository

import (
	"context"
	"errors"
	"time"

	"sttock-tracker/internal/entity"

	"gorm.io/gorm"
)

// NewSessionRepository creates a GORM-based session store, the hosted
// variant where the credential store owns session persistence.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

type sessionRepository struct {
	db *gorm.DB
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByToken retrieves a live session; an expired row counts as absent.
func (r *sessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var session entity.Session
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&entity.Session{}).Error
}

// DeleteExpired removes session rows past their expiry and reports how
// many were swept.
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&entity.Session{})
	return result.RowsAffected, result.Error
}
