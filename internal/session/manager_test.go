package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"c2panel/internal/auth"
	"c2panel/internal/dbtest"
	apperrors "c2panel/internal/errors"
	"c2panel/internal/logging"
	"c2panel/internal/model"
	"c2panel/internal/repository"
)

type fakeClock struct {
	t time.Time
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// sequentialTokens yields tok-1, tok-2, ... so rotations are observable.
func sequentialTokens() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("tok-%d", n), nil
	}
}

type fixture struct {
	db      *gorm.DB
	repo    repository.SessionRepository
	store   *MemoryStore
	clock   *fakeClock
	manager *Manager
	user    *model.User
}

func newFixture(t *testing.T, role string) *fixture {
	t.Helper()
	db := dbtest.New(t)
	user := &model.User{Email: role + "@example.com", Password: "pw", Username: role, Role: role}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))

	clock := newClock()
	store := NewMemoryStore()
	store.now = clock.Now
	repo := repository.NewSessionRepository(db)
	m := NewManager(repo, store, logging.Discard(),
		WithClock(clock.Now),
		WithTokenGenerator(sequentialTokens()),
	)
	return &fixture{db: db, repo: repo, store: store, clock: clock, manager: m, user: user}
}

func (f *fixture) identity() auth.Identity {
	return auth.Identity{ID: f.user.ID, Email: f.user.Email, Username: f.user.Username, Role: f.user.Role}
}

func (f *fixture) login(t *testing.T) *State {
	t.Helper()
	st := f.manager.Start(context.Background(), "")
	require.NoError(t, f.manager.Login(context.Background(), st, f.identity(), ClientInfo{IPAddress: "10.1.1.1", UserAgent: "ua"}))
	return st
}

func (f *fixture) record(t *testing.T, st *State) *model.Session {
	t.Helper()
	rec, err := f.repo.FindByID(context.Background(), st.data.Auth.SessionDBID)
	require.NoError(t, err)
	return rec
}

func TestLogin_AuthenticatesAndRotatesToken(t *testing.T) {
	f := newFixture(t, auth.RoleOperator)
	ctx := context.Background()

	st := f.login(t)

	assert.True(t, f.manager.IsAuthenticated(st))
	assert.True(t, f.manager.IsSessionValid(ctx, st))

	rec := f.record(t, st)
	assert.Equal(t, "tok-2", rec.Token, "record carries the rotated token")
	assert.NotEqual(t, "tok-1", rec.Token)
	assert.Equal(t, "tok-2", st.ID())
	assert.True(t, rec.Active)
	assert.Equal(t, "10.1.1.1", rec.IPAddress)
	assert.Equal(t, "ua", rec.UserAgent)
	assert.True(t, rec.ExpiresAt.Equal(f.clock.Now().Add(24*time.Hour)))

	user := f.manager.CurrentUser(st)
	require.NotNil(t, user)
	assert.Equal(t, f.user.ID, user.UserID)
	assert.Equal(t, auth.RoleOperator, user.Role)
	assert.Equal(t, rec.ID, user.SessionDBID)
	assert.True(t, user.LoginTime.Equal(f.clock.Now()))
	assert.True(t, user.LastActivity.Equal(f.clock.Now()))
}

func TestLogin_RotatesExistingIdentifier(t *testing.T) {
	f := newFixture(t, auth.RoleViewer)
	ctx := context.Background()

	// An anonymous session that already holds a flash message.
	require.NoError(t, f.store.Save(ctx, "pre-login", Data{Flash: "hello"}, time.Hour))
	st := f.manager.Start(ctx, "pre-login")
	require.Equal(t, "pre-login", st.ID())

	require.NoError(t, f.manager.Login(ctx, st, f.identity(), ClientInfo{}))
	assert.Equal(t, "tok-1", st.ID())

	id, write, err := f.manager.Commit(ctx, st)
	require.NoError(t, err)
	assert.True(t, write)
	assert.Equal(t, "tok-1", id)

	old, err := f.store.Load(ctx, "pre-login")
	require.NoError(t, err)
	assert.Nil(t, old, "the pre-login identifier is retired")

	rec := f.record(t, st)
	assert.Equal(t, "0.0.0.0", rec.IPAddress)
	assert.Equal(t, "Unknown", rec.UserAgent)
}

func TestLogin_PersistenceFailureLeavesAnonymous(t *testing.T) {
	repo := new(MockSessionRepository)
	repo.On("WithTransaction", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	m := NewManager(repo, NewMemoryStore(), logging.Discard())
	ctx := context.Background()

	st := m.Start(ctx, "")
	err := m.Login(ctx, st, auth.Identity{ID: 1, Role: auth.RoleAdmin}, ClientInfo{})

	require.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.False(t, m.IsAuthenticated(st))
	assert.Empty(t, st.ID())

	_, write, err := m.Commit(ctx, st)
	require.NoError(t, err)
	assert.False(t, write, "no cookie for a failed login")
}

func TestLogout(t *testing.T) {
	t.Run("deactivates record and sets flash", func(t *testing.T) {
		f := newFixture(t, auth.RoleAdmin)
		ctx := context.Background()
		st := f.login(t)
		dbID := st.data.Auth.SessionDBID
		_, _, err := f.manager.Commit(ctx, st)
		require.NoError(t, err)

		f.manager.Logout(ctx, st, "bye")

		assert.False(t, f.manager.IsAuthenticated(st))
		assert.Nil(t, f.manager.CurrentUser(st))
		rec, err := f.repo.FindByID(ctx, dbID)
		require.NoError(t, err)
		assert.False(t, rec.Active)

		id, write, err := f.manager.Commit(ctx, st)
		require.NoError(t, err)
		assert.True(t, write)
		assert.NotEqual(t, "tok-2", id, "logout moves to a new identifier")

		old, err := f.store.Load(ctx, "tok-2")
		require.NoError(t, err)
		assert.Nil(t, old)

		next := f.manager.Start(ctx, id)
		assert.Equal(t, "bye", f.manager.TakeFlash(next))
		assert.Empty(t, f.manager.TakeFlash(next), "flash is read once")
	})

	t.Run("no reason leaves no message and clears the cookie", func(t *testing.T) {
		f := newFixture(t, auth.RoleAdmin)
		ctx := context.Background()
		st := f.login(t)
		_, _, err := f.manager.Commit(ctx, st)
		require.NoError(t, err)

		f.manager.Logout(ctx, st, "")

		id, write, err := f.manager.Commit(ctx, st)
		require.NoError(t, err)
		assert.True(t, write)
		assert.Empty(t, id)
		assert.Zero(t, f.store.Len())
	})

	t.Run("is idempotent", func(t *testing.T) {
		f := newFixture(t, auth.RoleAdmin)
		ctx := context.Background()
		st := f.login(t)

		f.manager.Logout(ctx, st, "")
		f.manager.Logout(ctx, st, "")
		assert.False(t, f.manager.IsAuthenticated(st))
	})

	t.Run("destroys the session when persistence fails", func(t *testing.T) {
		repo := new(MockSessionRepository)
		repo.On("Deactivate", mock.Anything, uint(7)).Return(errors.New("write failed"))
		m := NewManager(repo, NewMemoryStore(), logging.Discard())
		st := &State{id: "sid", origID: "sid", data: Data{Auth: &AuthContext{UserID: 1, Role: auth.RoleAdmin, SessionDBID: 7}}}

		m.Logout(context.Background(), st, "")

		assert.False(t, m.IsAuthenticated(st))
		repo.AssertExpectations(t)
	})
}

func TestIsAuthenticated_RequiresCompleteContext(t *testing.T) {
	m := NewManager(new(MockSessionRepository), NewMemoryStore(), logging.Discard())

	assert.False(t, m.IsAuthenticated(&State{}))
	assert.False(t, m.IsAuthenticated(&State{data: Data{Auth: &AuthContext{UserID: 1}}}))
	assert.False(t, m.IsAuthenticated(&State{data: Data{Auth: &AuthContext{SessionDBID: 1}}}))
	assert.True(t, m.IsAuthenticated(&State{data: Data{Auth: &AuthContext{UserID: 1, SessionDBID: 1}}}))
}

func TestValidateSession(t *testing.T) {
	t.Run("past expiry is invalid even while active", func(t *testing.T) {
		f := newFixture(t, auth.RoleViewer)
		ctx := context.Background()
		st := f.login(t)

		f.clock.Advance(24*time.Hour + time.Second)

		assert.True(t, f.record(t, st).Active)
		assert.ErrorIs(t, f.manager.ValidateSession(ctx, st), apperrors.ErrSessionExpired)
		assert.False(t, f.manager.IsSessionValid(ctx, st))
	})

	t.Run("expiry instant itself is invalid", func(t *testing.T) {
		f := newFixture(t, auth.RoleViewer)
		st := f.login(t)

		f.clock.Advance(24 * time.Hour)
		assert.ErrorIs(t, f.manager.ValidateSession(context.Background(), st), apperrors.ErrSessionExpired)
	})

	t.Run("deactivated record is invalid", func(t *testing.T) {
		f := newFixture(t, auth.RoleViewer)
		ctx := context.Background()
		st := f.login(t)

		require.NoError(t, f.repo.Deactivate(ctx, st.data.Auth.SessionDBID))
		assert.ErrorIs(t, f.manager.ValidateSession(ctx, st), apperrors.ErrSessionNotFound)
	})

	t.Run("missing record is invalid", func(t *testing.T) {
		f := newFixture(t, auth.RoleViewer)
		st := f.login(t)
		st.data.Auth.SessionDBID = 424242

		assert.ErrorIs(t, f.manager.ValidateSession(context.Background(), st), apperrors.ErrSessionNotFound)
	})

	t.Run("storage failure is reported as unavailable", func(t *testing.T) {
		repo := new(MockSessionRepository)
		repo.On("FindByID", mock.Anything, uint(3)).Return(nil, errors.New("timeout"))
		m := NewManager(repo, NewMemoryStore(), logging.Discard())
		st := &State{data: Data{Auth: &AuthContext{UserID: 1, SessionDBID: 3}}}

		assert.ErrorIs(t, m.ValidateSession(context.Background(), st), apperrors.ErrStorageUnavailable)
	})

	t.Run("anonymous", func(t *testing.T) {
		m := NewManager(new(MockSessionRepository), NewMemoryStore(), logging.Discard())
		assert.ErrorIs(t, m.ValidateSession(context.Background(), &State{}), apperrors.ErrSessionNotFound)
	})
}

func TestRequireAuthenticated(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t, auth.RoleViewer)
		o := f.manager.RequireAuthenticated(context.Background(), &State{})
		assert.Equal(t, Unauthenticated, o)
		assert.Equal(t, "/login", RedirectURL("/login", o))
	})

	t.Run("valid session", func(t *testing.T) {
		f := newFixture(t, auth.RoleViewer)
		st := f.login(t)
		assert.Equal(t, Allowed, f.manager.RequireAuthenticated(context.Background(), st))
	})

	t.Run("record expired one second ago forces logout", func(t *testing.T) {
		f := newFixture(t, auth.RoleViewer)
		ctx := context.Background()
		st := f.login(t)
		dbID := st.data.Auth.SessionDBID

		require.NoError(t, f.db.Model(&model.Session{}).Where("id = ?", dbID).
			Update("expires_at", f.clock.Now().Add(-time.Second)).Error)

		o := f.manager.RequireAuthenticated(ctx, st)

		assert.Equal(t, SessionExpired, o)
		assert.False(t, f.manager.IsAuthenticated(st))
		rec, err := f.repo.FindByID(ctx, dbID)
		require.NoError(t, err)
		assert.False(t, rec.Active, "prior record is deactivated")

		u, err := url.Parse(RedirectURL("/login", o))
		require.NoError(t, err)
		assert.Equal(t, "/login", u.Path)
		assert.Equal(t, "session_expired", u.Query().Get("message"))
		assert.Equal(t, "session_expired", f.manager.TakeFlash(st))
	})
}

func TestCheckInactivityTimeout(t *testing.T) {
	const limit = 30 * time.Minute

	t.Run("idle beyond the limit logs out", func(t *testing.T) {
		f := newFixture(t, auth.RoleOperator)
		ctx := context.Background()
		st := f.login(t)
		dbID := st.data.Auth.SessionDBID

		f.clock.Advance(limit + time.Second)

		assert.Equal(t, SessionExpired, f.manager.CheckInactivityTimeout(ctx, st, limit))
		assert.False(t, f.manager.IsAuthenticated(st))
		rec, err := f.repo.FindByID(ctx, dbID)
		require.NoError(t, err)
		assert.False(t, rec.Active)
	})

	t.Run("exactly at the limit refreshes activity", func(t *testing.T) {
		f := newFixture(t, auth.RoleOperator)
		ctx := context.Background()
		st := f.login(t)

		f.clock.Advance(limit)

		assert.Equal(t, Allowed, f.manager.CheckInactivityTimeout(ctx, st, limit))
		assert.True(t, f.manager.IsAuthenticated(st))
		assert.True(t, st.data.Auth.LastActivity.Equal(f.clock.Now()))
	})

	t.Run("activity advances the idle clock", func(t *testing.T) {
		f := newFixture(t, auth.RoleOperator)
		ctx := context.Background()
		st := f.login(t)
		login := st.data.Auth.LoginTime

		for i := 0; i < 3; i++ {
			f.clock.Advance(20 * time.Minute)
			require.Equal(t, Allowed, f.manager.CheckInactivityTimeout(ctx, st, limit))
		}
		assert.True(t, f.manager.IsAuthenticated(st))
		assert.True(t, st.data.Auth.LoginTime.Equal(login), "login time is unchanged")
		assert.Equal(t, auth.RoleOperator, st.data.Auth.Role)
	})

	t.Run("missing activity counts as now", func(t *testing.T) {
		f := newFixture(t, auth.RoleOperator)
		st := f.login(t)
		st.data.Auth.LastActivity = time.Time{}

		assert.Equal(t, Allowed, f.manager.CheckInactivityTimeout(context.Background(), st, limit))
		assert.True(t, st.data.Auth.LastActivity.Equal(f.clock.Now()))
	})

	t.Run("anonymous is a no-op", func(t *testing.T) {
		f := newFixture(t, auth.RoleOperator)
		st := &State{}
		assert.Equal(t, Allowed, f.manager.CheckInactivityTimeout(context.Background(), st, limit))
		assert.False(t, st.dirty)
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required string
		want     Outcome
	}{
		{name: "admin needs admin", role: auth.RoleAdmin, required: auth.RoleAdmin, want: Allowed},
		{name: "operator needs admin", role: auth.RoleOperator, required: auth.RoleAdmin, want: Unauthorized},
		{name: "viewer needs operator", role: auth.RoleViewer, required: auth.RoleOperator, want: Unauthorized},
		{name: "operator needs viewer", role: auth.RoleOperator, required: auth.RoleViewer, want: Allowed},
		{name: "unknown requirement", role: auth.RoleAdmin, required: "root", want: Unauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.role)
			st := f.login(t)

			o := f.manager.RequireRole(context.Background(), st, tt.required)
			assert.Equal(t, tt.want, o)
			assert.True(t, f.manager.IsAuthenticated(st), "role failures keep the session")
			if tt.want == Unauthorized {
				assert.Equal(t, "/dashboard?message=unauthorized", RedirectURL("/dashboard", o))
			}
		})
	}

	t.Run("expired session reports expiry before role", func(t *testing.T) {
		f := newFixture(t, auth.RoleViewer)
		st := f.login(t)
		f.clock.Advance(25 * time.Hour)

		assert.Equal(t, SessionExpired, f.manager.RequireRole(context.Background(), st, auth.RoleAdmin))
	})
}

func TestHasRole(t *testing.T) {
	m := NewManager(new(MockSessionRepository), NewMemoryStore(), logging.Discard())
	withRole := func(role string) *State {
		return &State{data: Data{Auth: &AuthContext{UserID: 1, SessionDBID: 1, Role: role}}}
	}

	for _, role := range []string{auth.RoleViewer, auth.RoleOperator, auth.RoleAdmin} {
		assert.True(t, m.HasRole(withRole(role), auth.RoleViewer), role)
		assert.Equal(t, role == auth.RoleAdmin, m.HasRole(withRole(role), auth.RoleAdmin), role)
		assert.False(t, m.HasRole(withRole(role), "superadmin"), role)
	}
	assert.False(t, m.HasRole(&State{}, auth.RoleViewer))
}

func TestCleanupExpiredSessions(t *testing.T) {
	f := newFixture(t, auth.RoleViewer)
	ctx := context.Background()
	now := f.clock.Now()

	rows := []*model.Session{
		{UserID: f.user.ID, Token: "a", ExpiresAt: now.Add(-2 * time.Hour), Active: true},
		{UserID: f.user.ID, Token: "b", ExpiresAt: now.Add(-time.Minute), Active: true},
		{UserID: f.user.ID, Token: "c", ExpiresAt: now.Add(time.Hour), Active: true},
	}
	for _, r := range rows {
		require.NoError(t, f.repo.Create(ctx, r))
	}

	n, err := f.manager.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for i, want := range []bool{false, false, true} {
		rec, err := f.repo.FindByID(ctx, rows[i].ID)
		require.NoError(t, err)
		assert.Equal(t, want, rec.Active, "row %s", rows[i].Token)
	}
}

func TestCleanupExpiredSessions_StorageFailure(t *testing.T) {
	repo := new(MockSessionRepository)
	repo.On("DeactivateExpired", mock.Anything, mock.Anything).Return(int64(0), errors.New("down"))
	m := NewManager(repo, NewMemoryStore(), logging.Discard())

	n, err := m.CleanupExpiredSessions(context.Background())
	assert.Zero(t, n)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
}

func TestStartCommit(t *testing.T) {
	f := newFixture(t, auth.RoleAdmin)
	ctx := context.Background()

	t.Run("anonymous request writes nothing", func(t *testing.T) {
		st := f.manager.Start(ctx, "")
		id, write, err := f.manager.Commit(ctx, st)
		require.NoError(t, err)
		assert.Empty(t, id)
		assert.False(t, write)
		assert.Zero(t, f.store.Len())
	})

	t.Run("unknown identifier is cleared", func(t *testing.T) {
		st := f.manager.Start(ctx, "forged")
		assert.Empty(t, st.ID())
		_, write, err := f.manager.Commit(ctx, st)
		require.NoError(t, err)
		assert.False(t, write)
	})

	t.Run("authenticated session round-trips", func(t *testing.T) {
		st := f.login(t)
		id, write, err := f.manager.Commit(ctx, st)
		require.NoError(t, err)
		require.True(t, write)

		next := f.manager.Start(ctx, id)
		assert.True(t, f.manager.IsAuthenticated(next))
		assert.Equal(t, f.user.Email, f.manager.CurrentUser(next).Email)

		again, write, err := f.manager.Commit(ctx, next)
		require.NoError(t, err)
		assert.Equal(t, id, again)
		assert.False(t, write, "unchanged identifier needs no cookie")
	})
}

func TestRedirectURL(t *testing.T) {
	assert.Equal(t, "/login", RedirectURL("/login", Allowed))
	assert.Equal(t, "/login", RedirectURL("/login", Unauthenticated))
	assert.Equal(t, "/login?message=session_expired", RedirectURL("/login", SessionExpired))
	assert.Equal(t, "/dashboard?message=unauthorized", RedirectURL("/dashboard", Unauthorized))
	assert.Equal(t, "/login?message=unauthorized&tab=2", RedirectURL("/login?tab=2", Unauthorized))

	assert.ErrorIs(t, SessionExpired.Err(), apperrors.ErrSessionExpired)
	assert.ErrorIs(t, Unauthorized.Err(), apperrors.ErrUnauthorized)
	assert.NoError(t, Allowed.Err())
}
