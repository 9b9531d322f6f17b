package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "c2panel/internal/errors"
	"c2panel/internal/session"
)

// SessionContextKey is the echo context key holding the request's *session.State.
const SessionContextKey = "session"

// SessionState returns the server-side session of the request.
// Requests that bypassed the session middleware get an anonymous state.
func SessionState(c echo.Context) *session.State {
	if st, ok := c.Get(SessionContextKey).(*session.State); ok && st != nil {
		return st
	}
	st := &session.State{}
	c.Set(SessionContextKey, st)
	return st
}

// errorResponse converts a domain error into an echo HTTP error.
func errorResponse(err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
