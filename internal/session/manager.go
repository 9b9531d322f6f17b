package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"c2panel/internal/auth"
	apperrors "c2panel/internal/errors"
	"c2panel/internal/logging"
	"c2panel/internal/model"
	"c2panel/internal/repository"
)

const (
	// DefaultSessionTTL is how long a persisted session record stays valid after login.
	DefaultSessionTTL = 24 * time.Hour
	// DefaultInactivityTimeout is the idle period after which a session is logged out.
	DefaultInactivityTimeout = 30 * time.Minute

	defaultIP        = "0.0.0.0"
	defaultUserAgent = "Unknown"
)

// ClientInfo describes the client that is logging in.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// Manager runs the login lifecycle: it pairs the server-side session with a persisted
// session record and answers authentication and authorization queries.
// A Manager is safe for concurrent use; the State it operates on is not.
type Manager struct {
	sessions repository.SessionRepository
	store    Store
	log      logging.Logger
	now      func() time.Time
	ttl      time.Duration
	newToken func() (string, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithSessionTTL sets the lifetime of persisted session records and stored session data.
func WithSessionTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithTokenGenerator overrides how session identifiers are generated.
func WithTokenGenerator(gen func() (string, error)) Option {
	return func(m *Manager) { m.newToken = gen }
}

// NewManager creates a session manager.
func NewManager(sessions repository.SessionRepository, store Store, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions: sessions,
		store:    store,
		log:      log,
		now:      time.Now,
		ttl:      DefaultSessionTTL,
		newToken: auth.NewToken,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) clock() time.Time {
	return m.now().UTC().Truncate(time.Second)
}

// Start loads the session identified by id. An empty, unknown or unreadable id yields an
// anonymous State with no identifier.
func (m *Manager) Start(ctx context.Context, id string) *State {
	if id == "" {
		return &State{}
	}
	data, err := m.store.Load(ctx, id)
	if err != nil {
		m.log.Error(ctx, "session load error", "error", err)
		return &State{}
	}
	if data == nil {
		return &State{}
	}
	return &State{id: id, origID: id, data: *data}
}

// Commit persists st and reports the identifier the client should hold. write is true when
// the cookie must be (re)sent; an empty id with write set means the cookie must be cleared.
func (m *Manager) Commit(ctx context.Context, st *State) (id string, write bool, err error) {
	for _, prev := range st.prevIDs {
		if err := m.store.Delete(ctx, prev); err != nil {
			m.log.Warn(ctx, "session delete error", "error", err)
		}
	}
	st.prevIDs = nil

	if st.data.empty() {
		if st.id != "" {
			if err := m.store.Delete(ctx, st.id); err != nil {
				m.log.Warn(ctx, "session delete error", "error", err)
			}
		}
		write = st.origID != ""
		st.id, st.origID, st.dirty = "", "", false
		return "", write, nil
	}

	if st.id == "" {
		token, err := m.newToken()
		if err != nil {
			return "", false, err
		}
		st.id = token
	}
	write = st.id != st.origID
	if st.dirty || write {
		if err := m.store.Save(ctx, st.id, st.data, m.ttl); err != nil {
			return "", false, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
		}
	}
	st.origID, st.dirty = st.id, false
	return st.id, write, nil
}

// Login records a new persisted session for the verified identity and authenticates st.
// The record is created under the current identifier and re-tokened to a freshly generated
// one in the same transaction; st only changes once that transaction has committed.
func (m *Manager) Login(ctx context.Context, st *State, id auth.Identity, client ClientInfo) error {
	preToken := st.id
	if preToken == "" {
		t, err := m.newToken()
		if err != nil {
			m.log.Error(ctx, "login error", "error", err)
			return err
		}
		preToken = t
	}
	newToken, err := m.newToken()
	if err != nil {
		m.log.Error(ctx, "login error", "error", err)
		return err
	}

	if client.IPAddress == "" {
		client.IPAddress = defaultIP
	}
	if client.UserAgent == "" {
		client.UserAgent = defaultUserAgent
	}

	now := m.clock()
	record := &model.Session{
		UserID:    id.ID,
		Token:     preToken,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		ExpiresAt: now.Add(m.ttl),
		Active:    true,
	}
	err = m.sessions.WithTransaction(ctx, func(ctx context.Context, repo repository.SessionRepository) error {
		if err := repo.Create(ctx, record); err != nil {
			return fmt.Errorf("create session record: %w", err)
		}
		if err := repo.UpdateToken(ctx, record.ID, newToken); err != nil {
			return fmt.Errorf("rotate session token: %w", err)
		}
		return nil
	})
	if err != nil {
		m.log.Error(ctx, "login error", "user_id", id.ID, "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	st.id = preToken
	st.rotate(newToken)
	st.data.Auth = &AuthContext{
		UserID:       id.ID,
		Email:        id.Email,
		Username:     id.Username,
		Role:         id.Role,
		LoginTime:    now,
		LastActivity: now,
		SessionDBID:  record.ID,
	}
	return nil
}

// Logout deactivates the persisted record, destroys the authenticated context and moves st
// to a new identifier. A non-empty reason becomes the flash message for the next page.
// Persistence failures are logged; the session is destroyed regardless.
func (m *Manager) Logout(ctx context.Context, st *State, reason string) {
	if a := st.data.Auth; a != nil && a.SessionDBID != 0 {
		if err := m.sessions.Deactivate(ctx, a.SessionDBID); err != nil {
			m.log.Error(ctx, "logout database error", "session_db_id", a.SessionDBID, "error", err)
		}
	}
	st.data = Data{Flash: reason}
	st.rotate("")
}

// IsAuthenticated reports whether st carries a complete authenticated context. It does no I/O.
func (m *Manager) IsAuthenticated(st *State) bool {
	a := st.data.Auth
	return a != nil && a.UserID != 0 && a.SessionDBID != 0
}

// ValidateSession re-reads the persisted record behind st.
// It returns ErrSessionNotFound for missing or inactive records, ErrSessionExpired for
// records past expiry and ErrStorageUnavailable when the record cannot be read.
func (m *Manager) ValidateSession(ctx context.Context, st *State) error {
	if !m.IsAuthenticated(st) {
		return apperrors.ErrSessionNotFound
	}
	a := st.data.Auth
	record, err := m.sessions.FindByID(ctx, a.SessionDBID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrSessionNotFound
	}
	if err != nil {
		m.log.Error(ctx, "session validation error", "session_db_id", a.SessionDBID, "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	if !record.Active || record.UserID != a.UserID {
		return apperrors.ErrSessionNotFound
	}
	if !record.ExpiresAt.After(m.clock()) {
		return apperrors.ErrSessionExpired
	}
	return nil
}

// IsSessionValid reports whether the persisted record behind st is active and unexpired.
func (m *Manager) IsSessionValid(ctx context.Context, st *State) bool {
	return m.ValidateSession(ctx, st) == nil
}

// RequireAuthenticated checks st against the persisted record. An authenticated session
// whose record is no longer valid is logged out with ReasonSessionExpired.
func (m *Manager) RequireAuthenticated(ctx context.Context, st *State) Outcome {
	if !m.IsAuthenticated(st) {
		return Unauthenticated
	}
	if !m.IsSessionValid(ctx, st) {
		m.Logout(ctx, st, ReasonSessionExpired)
		return SessionExpired
	}
	return Allowed
}

// CheckInactivityTimeout logs st out when it has been idle longer than limit, otherwise it
// advances the last-activity time. Anonymous sessions are left alone.
func (m *Manager) CheckInactivityTimeout(ctx context.Context, st *State, limit time.Duration) Outcome {
	if !m.IsAuthenticated(st) {
		return Allowed
	}
	now := m.clock()
	a := st.data.Auth
	last := a.LastActivity
	if last.IsZero() {
		last = now
	}
	if now.Sub(last) > limit {
		m.Logout(ctx, st, ReasonSessionExpired)
		return SessionExpired
	}
	a.LastActivity = now
	st.dirty = true
	return Allowed
}

// HasRole reports whether the authenticated user meets the required role.
func (m *Manager) HasRole(st *State, required string) bool {
	a := st.data.Auth
	if a == nil {
		return false
	}
	return auth.Satisfies(a.Role, required)
}

// RequireRole runs RequireAuthenticated and then checks the role.
func (m *Manager) RequireRole(ctx context.Context, st *State, required string) Outcome {
	if o := m.RequireAuthenticated(ctx, st); o != Allowed {
		return o
	}
	if !m.HasRole(st, required) {
		return Unauthorized
	}
	return Allowed
}

// CleanupExpiredSessions marks every persisted record past its expiry as inactive.
func (m *Manager) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	n, err := m.sessions.DeactivateExpired(ctx, m.clock())
	if err != nil {
		m.log.Error(ctx, "session cleanup error", "error", err)
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	if n > 0 {
		m.log.Debug(ctx, "expired sessions deactivated", "count", n)
	}
	return n, nil
}

// TakeFlash returns the pending flash message and clears it.
func (m *Manager) TakeFlash(st *State) string {
	msg := st.data.Flash
	if msg != "" {
		st.data.Flash = ""
		st.dirty = true
	}
	return msg
}

// CurrentUser returns a copy of the authenticated context, or nil.
func (m *Manager) CurrentUser(st *State) *AuthContext {
	if !m.IsAuthenticated(st) {
		return nil
	}
	a := *st.data.Auth
	return &a
}
