package model

import "time"

// User represents an operator account allowed into the panel.
// Rows are managed by an administrative process; the panel only reads them.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"` // bcrypt hash or legacy plaintext
	Username  string    `json:"username" gorm:"size:100;not null"`
	Role      string    `json:"role" gorm:"size:20;not null;default:'viewer'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name shared with the legacy schema.
func (User) TableName() string { return "users" }
