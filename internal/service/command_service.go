package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "c2panel/internal/errors"
	"c2panel/internal/logging"
	"c2panel/internal/model"
	"c2panel/internal/repository"
)

// CommandService records commands submitted for computers. Nothing is dispatched.
type CommandService interface {
	LogCommand(ctx context.Context, userID uint, computerID, command string, response *string, status model.CommandStatus) (*model.CommandLog, error)
}

type commandService struct {
	repo repository.CommandLogRepository
	log  logging.Logger
}

// NewCommandService creates a new command service.
func NewCommandService(repo repository.CommandLogRepository, log logging.Logger) CommandService {
	return &commandService{repo: repo, log: log}
}

// LogCommand stores a command log entry; an empty status means pending.
func (s *commandService) LogCommand(ctx context.Context, userID uint, computerID, command string, response *string, status model.CommandStatus) (*model.CommandLog, error) {
	if userID == 0 {
		return nil, apperrors.ErrSessionNotFound
	}
	if strings.TrimSpace(command) == "" {
		return nil, apperrors.ErrInvalidCommand
	}
	if status == "" {
		status = model.CommandStatusPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidCommand, status)
	}

	entry := &model.CommandLog{
		UserID:     userID,
		ComputerID: computerID,
		Command:    command,
		Response:   response,
		Status:     status,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error(ctx, "command logging error", "computer_id", computerID, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return entry, nil
}
