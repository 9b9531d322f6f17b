package model

import "time"

// CommandStatus represents the lifecycle of a logged command.
type CommandStatus string

const (
	CommandStatusPending   CommandStatus = "pending"
	CommandStatusSent      CommandStatus = "sent"
	CommandStatusCompleted CommandStatus = "completed"
	CommandStatusFailed    CommandStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s CommandStatus) Valid() bool {
	switch s {
	case CommandStatusPending, CommandStatusSent, CommandStatusCompleted, CommandStatusFailed:
		return true
	}
	return false
}

// CommandLog records a command submitted for a computer.
// All submissions are logged; nothing reads them back inside the panel.
type CommandLog struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	UserID     uint          `json:"user_id" gorm:"not null;index"`
	ComputerID string        `json:"computer_id" gorm:"size:32;not null;index"`
	Command    string        `json:"command" gorm:"type:text;not null"`
	Response   *string       `json:"response,omitempty" gorm:"type:text"`
	Status     CommandStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (CommandLog) TableName() string { return "command_logs" }
