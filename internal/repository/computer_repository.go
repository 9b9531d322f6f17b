package repository

import (
	"context"

	"gorm.io/gorm"

	"c2panel/internal/model"
)

// ComputerRepository defines computer persistence operations.
type ComputerRepository interface {
	List(ctx context.Context) ([]model.Computer, error)
	FindByID(ctx context.Context, id string) (*model.Computer, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, computer *model.Computer) error
}

type computerRepository struct {
	db *gorm.DB
}

// NewComputerRepository creates a new computer repository.
func NewComputerRepository(db *gorm.DB) ComputerRepository {
	return &computerRepository{db: db}
}

// List returns all computers ordered by name.
func (r *computerRepository) List(ctx context.Context) ([]model.Computer, error) {
	var computers []model.Computer
	if err := r.db.WithContext(ctx).Order("computer_name").Find(&computers).Error; err != nil {
		return nil, err
	}
	return computers, nil
}

// FindByID finds a computer by its identifier.
func (r *computerRepository) FindByID(ctx context.Context, id string) (*model.Computer, error) {
	var computer model.Computer
	if err := r.db.WithContext(ctx).Where("computer_id = ?", id).First(&computer).Error; err != nil {
		return nil, err
	}
	return &computer, nil
}

// Count returns the number of registered computers.
func (r *computerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Computer{}).Count(&n).Error
	return n, err
}

// Save inserts the computer or updates it when the identifier exists.
func (r *computerRepository) Save(ctx context.Context, computer *model.Computer) error {
	return r.db.WithContext(ctx).Save(computer).Error
}
