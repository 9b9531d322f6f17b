package model

import "time"

// Session is the persisted record of one login.
// A session is valid while Active is set and ExpiresAt lies in the future.
type Session struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Token     string    `json:"-" gorm:"column:session_token;size:128;not null;index"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"size:512"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	Active    bool      `json:"active" gorm:"not null;default:true;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (Session) TableName() string { return "user_sessions" }
