package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"c2panel/internal/auth"
	apperrors "c2panel/internal/errors"
	"c2panel/internal/logging"
	"c2panel/internal/model"
	"c2panel/internal/repository"
)

// ComputerView is a computer as shown on the dashboard.
type ComputerView struct {
	model.Computer
	Status model.ComputerStatus `json:"status"`
}

// ComputerStats summarises computers by status.
type ComputerStats struct {
	Online  int `json:"online"`
	Offline int `json:"offline"`
	Total   int `json:"total"`
}

// SampleComputers is shown while no computers are registered.
var SampleComputers = []ComputerView{
	{Computer: model.Computer{ComputerID: "PC01", ComputerName: "PC01", OwnerName: "Jan Kowalski", IPAddress: "192.168.1.100"}, Status: model.ComputerStatusOnline},
	{Computer: model.Computer{ComputerID: "PC02", ComputerName: "PC02", OwnerName: "Anna Nowak", IPAddress: "192.168.1.101"}, Status: model.ComputerStatusOffline},
	{Computer: model.Computer{ComputerID: "PC03", ComputerName: "PC03", OwnerName: "Serwer testowy", IPAddress: "192.168.1.102"}, Status: model.ComputerStatusOnline},
}

// ComputerService exposes the managed machines.
type ComputerService interface {
	List(ctx context.Context) ([]ComputerView, error)
	Get(ctx context.Context, id string) (*ComputerView, error)
}

type computerService struct {
	repo repository.ComputerRepository
	log  logging.Logger
}

// NewComputerService creates a new computer service.
func NewComputerService(repo repository.ComputerRepository, log logging.Logger) ComputerService {
	return &computerService{repo: repo, log: log}
}

// List returns registered computers, or the sample machines when none can be read.
// Registered computers report no live status and are shown offline.
func (s *computerService) List(ctx context.Context) ([]ComputerView, error) {
	computers, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error(ctx, "error fetching computers", "error", err)
	}
	if len(computers) == 0 {
		return samples(), nil
	}

	views := make([]ComputerView, 0, len(computers))
	for _, c := range computers {
		views = append(views, ComputerView{Computer: c, Status: model.ComputerStatusOffline})
	}
	return views, nil
}

// Get returns one computer. Sample machines are served while the table is empty.
func (s *computerService) Get(ctx context.Context, id string) (*ComputerView, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return &ComputerView{Computer: *c, Status: model.ComputerStatusOffline}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Error(ctx, "error fetching computer", "computer_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		s.log.Error(ctx, "error counting computers", "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	if n == 0 {
		for _, sample := range SampleComputers {
			if sample.ComputerID == id {
				v := sample
				return &v, nil
			}
		}
	}
	return nil, apperrors.ErrComputerNotFound
}

func samples() []ComputerView {
	out := make([]ComputerView, len(SampleComputers))
	copy(out, SampleComputers)
	return out
}

// Stats counts computers by status; anything not online counts as offline.
func Stats(computers []ComputerView) ComputerStats {
	stats := ComputerStats{Total: len(computers)}
	for _, c := range computers {
		if c.Status == model.ComputerStatusOnline {
			stats.Online++
		} else {
			stats.Offline++
		}
	}
	return stats
}

// WelcomeMessage returns the dashboard greeting for a role.
func WelcomeMessage(role string) string {
	switch role {
	case auth.RoleAdmin:
		return "Witamy Administratora! Masz pełny dostęp do systemu."
	case auth.RoleOperator:
		return "Witamy Operatora! Możesz zarządzać komputerami."
	case auth.RoleViewer:
		return "Witamy! Masz dostęp tylko do odczytu."
	default:
		return "Witamy w systemie!"
	}
}
