package session

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"c2panel/internal/model"
	"c2panel/internal/repository"
)

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) UpdateToken(ctx context.Context, id uint, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uint) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) FindActiveByID(ctx context.Context, id uint) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) Deactivate(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.SessionRepository) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}
