package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"c2panel/internal/handler"
	"c2panel/internal/session"
)

// GuardConfig configures a page guard.
type GuardConfig struct {
	// Role is the minimum role; empty admits any authenticated user.
	Role string
	// Target receives unauthenticated and expired sessions.
	Target string
	// ForbiddenTarget receives users lacking Role; defaults to Target.
	ForbiddenTarget string
	// Inactivity is the idle limit; zero disables the check.
	Inactivity time.Duration
}

// Guard redirects requests that fail the session or role check before the handler runs.
func Guard(m *session.Manager, cfg GuardConfig) echo.MiddlewareFunc {
	if cfg.ForbiddenTarget == "" {
		cfg.ForbiddenTarget = cfg.Target
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			st := handler.SessionState(c)

			var outcome session.Outcome
			if cfg.Role == "" {
				outcome = m.RequireAuthenticated(ctx, st)
			} else {
				outcome = m.RequireRole(ctx, st, cfg.Role)
			}
			if outcome == session.Allowed && cfg.Inactivity > 0 {
				outcome = m.CheckInactivityTimeout(ctx, st, cfg.Inactivity)
			}

			switch outcome {
			case session.Allowed:
				return next(c)
			case session.Unauthorized:
				return c.Redirect(http.StatusFound, session.RedirectURL(cfg.ForbiddenTarget, outcome))
			default:
				return c.Redirect(http.StatusFound, session.RedirectURL(cfg.Target, outcome))
			}
		}
	}
}
