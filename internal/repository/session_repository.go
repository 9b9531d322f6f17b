package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"c2panel/internal/model"
)

// SessionRepository defines persisted session operations.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	UpdateToken(ctx context.Context, id uint, token string) error
	FindByID(ctx context.Context, id uint) (*model.Session, error)
	FindActiveByID(ctx context.Context, id uint) (*model.Session, error)
	Deactivate(ctx context.Context, id uint) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo SessionRepository) error) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a session record; the generated ID is set on session.
func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// UpdateToken replaces the token of a session record.
func (r *sessionRepository) UpdateToken(ctx context.Context, id uint, token string) error {
	return r.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ?", id).
		Update("session_token", token).Error
}

// FindByID finds a session record regardless of its state.
func (r *sessionRepository) FindByID(ctx context.Context, id uint) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindActiveByID finds a session record that is still marked active.
func (r *sessionRepository) FindActiveByID(ctx context.Context, id uint) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Deactivate marks a session record inactive. Deactivating an inactive or missing record is not an error.
func (r *sessionRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ?", id).
		Update("active", false).Error
}

// DeactivateExpired marks every active record whose expiry has passed as inactive.
func (r *sessionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("expires_at < ? AND active = ?", now, true).
		Update("active", false)
	return res.RowsAffected, res.Error
}

// WithTransaction executes a function within a database transaction.
func (r *sessionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo SessionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &sessionRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
