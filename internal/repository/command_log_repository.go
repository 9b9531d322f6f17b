package repository

import (
	"context"

	"gorm.io/gorm"

	"c2panel/internal/model"
)

// CommandLogRepository defines command log persistence operations.
type CommandLogRepository interface {
	Create(ctx context.Context, log *model.CommandLog) error
}

type commandLogRepository struct {
	db *gorm.DB
}

// NewCommandLogRepository creates a new command log repository.
func NewCommandLogRepository(db *gorm.DB) CommandLogRepository {
	return &commandLogRepository{db: db}
}

// Create creates a new command log entry.
func (r *commandLogRepository) Create(ctx context.Context, log *model.CommandLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
