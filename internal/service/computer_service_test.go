package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"c2panel/internal/auth"
	apperrors "c2panel/internal/errors"
	"c2panel/internal/logging"
	"c2panel/internal/model"
)

func TestComputerService_List(t *testing.T) {
	registered := []model.Computer{{ComputerID: "WS1", ComputerName: "Workstation", OwnerName: "Ola", IPAddress: "10.0.0.5"}}

	tests := []struct {
		name      string
		setupMock func(*MockComputerRepository)
		wantIDs   []string
		wantStats ComputerStats
	}{
		{
			name: "registered computers are offline",
			setupMock: func(m *MockComputerRepository) {
				m.On("List", mock.Anything).Return(registered, nil)
			},
			wantIDs:   []string{"WS1"},
			wantStats: ComputerStats{Online: 0, Offline: 1, Total: 1},
		},
		{
			name: "empty table falls back to samples",
			setupMock: func(m *MockComputerRepository) {
				m.On("List", mock.Anything).Return([]model.Computer{}, nil)
			},
			wantIDs:   []string{"PC01", "PC02", "PC03"},
			wantStats: ComputerStats{Online: 2, Offline: 1, Total: 3},
		},
		{
			name: "read failure falls back to samples",
			setupMock: func(m *MockComputerRepository) {
				m.On("List", mock.Anything).Return(nil, errors.New("down"))
			},
			wantIDs:   []string{"PC01", "PC02", "PC03"},
			wantStats: ComputerStats{Online: 2, Offline: 1, Total: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockComputerRepository)
			tt.setupMock(mockRepo)

			list, err := NewComputerService(mockRepo, logging.Discard()).List(context.Background())
			require.NoError(t, err)

			ids := make([]string, 0, len(list))
			for _, c := range list {
				ids = append(ids, c.ComputerID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantStats, Stats(list))
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestComputerService_ListDoesNotShareSamples(t *testing.T) {
	mockRepo := new(MockComputerRepository)
	mockRepo.On("List", mock.Anything).Return(nil, nil)
	svc := NewComputerService(mockRepo, logging.Discard())

	first, _ := svc.List(context.Background())
	first[0].OwnerName = "changed"

	second, _ := svc.List(context.Background())
	assert.Equal(t, "Jan Kowalski", second[0].OwnerName)
}

func TestComputerService_Get(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		setupMock     func(*MockComputerRepository)
		expectedError error
		wantOwner     string
	}{
		{
			name: "registered",
			id:   "WS1",
			setupMock: func(m *MockComputerRepository) {
				m.On("FindByID", mock.Anything, "WS1").Return(&model.Computer{ComputerID: "WS1", OwnerName: "Ola"}, nil)
			},
			wantOwner: "Ola",
		},
		{
			name: "sample while table is empty",
			id:   "PC02",
			setupMock: func(m *MockComputerRepository) {
				m.On("FindByID", mock.Anything, "PC02").Return(nil, gorm.ErrRecordNotFound)
				m.On("Count", mock.Anything).Return(int64(0), nil)
			},
			wantOwner: "Anna Nowak",
		},
		{
			name: "samples are hidden once computers are registered",
			id:   "PC02",
			setupMock: func(m *MockComputerRepository) {
				m.On("FindByID", mock.Anything, "PC02").Return(nil, gorm.ErrRecordNotFound)
				m.On("Count", mock.Anything).Return(int64(4), nil)
			},
			expectedError: apperrors.ErrComputerNotFound,
		},
		{
			name: "unknown",
			id:   "PC99",
			setupMock: func(m *MockComputerRepository) {
				m.On("FindByID", mock.Anything, "PC99").Return(nil, gorm.ErrRecordNotFound)
				m.On("Count", mock.Anything).Return(int64(0), nil)
			},
			expectedError: apperrors.ErrComputerNotFound,
		},
		{
			name: "storage failure",
			id:   "WS1",
			setupMock: func(m *MockComputerRepository) {
				m.On("FindByID", mock.Anything, "WS1").Return(nil, errors.New("down"))
			},
			expectedError: apperrors.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockComputerRepository)
			tt.setupMock(mockRepo)

			got, err := NewComputerService(mockRepo, logging.Discard()).Get(context.Background(), tt.id)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOwner, got.OwnerName)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestWelcomeMessage(t *testing.T) {
	assert.Contains(t, WelcomeMessage(auth.RoleAdmin), "Administratora")
	assert.Contains(t, WelcomeMessage(auth.RoleOperator), "Operatora")
	assert.Contains(t, WelcomeMessage(auth.RoleViewer), "tylko do odczytu")
	assert.Equal(t, "Witamy w systemie!", WelcomeMessage("guest"))
}
