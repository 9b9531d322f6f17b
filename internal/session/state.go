// Package session implements the panel's server-side sessions and the login lifecycle
// that pairs them with persisted session records.
package session

import "time"

// AuthContext is the authenticated user held in the server-side session.
type AuthContext struct {
	UserID       uint      `json:"user_id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	LoginTime    time.Time `json:"login_time"`
	LastActivity time.Time `json:"last_activity"`
	// SessionDBID references the persisted session record that backs this login.
	SessionDBID uint `json:"session_db_id"`
}

// Data is what the store keeps for one server-side session.
type Data struct {
	Auth  *AuthContext `json:"auth,omitempty"`
	Flash string       `json:"flash,omitempty"`
}

func (d Data) empty() bool {
	return d.Auth == nil && d.Flash == ""
}

func (d Data) clone() Data {
	if d.Auth != nil {
		a := *d.Auth
		d.Auth = &a
	}
	return d
}

// State is the server-side session of a single request.
// It is not safe for concurrent use; each request owns its State.
type State struct {
	id      string
	origID  string
	prevIDs []string
	data    Data
	dirty   bool
}

// ID returns the current session identifier, empty while none has been issued.
func (s *State) ID() string {
	return s.id
}

// rotate retires the current identifier and moves the session to next.
func (s *State) rotate(next string) {
	if s.id != "" {
		s.prevIDs = append(s.prevIDs, s.id)
	}
	s.id = next
	s.dirty = true
}
