package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"c2panel/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockComputerRepository is a mock implementation of ComputerRepository.
type MockComputerRepository struct {
	mock.Mock
}

func (m *MockComputerRepository) List(ctx context.Context) ([]model.Computer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Computer), args.Error(1)
}

func (m *MockComputerRepository) FindByID(ctx context.Context, id string) (*model.Computer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Computer), args.Error(1)
}

func (m *MockComputerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComputerRepository) Save(ctx context.Context, computer *model.Computer) error {
	args := m.Called(ctx, computer)
	return args.Error(0)
}

// MockCommandLogRepository is a mock implementation of CommandLogRepository.
type MockCommandLogRepository struct {
	mock.Mock
}

func (m *MockCommandLogRepository) Create(ctx context.Context, log *model.CommandLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
