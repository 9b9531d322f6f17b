package router

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"c2panel/internal/auth"
	"c2panel/internal/handler"
	"c2panel/internal/logging"
	"c2panel/internal/session"
)

// cookieTokenKey is where the verified session cookie token is stored in the echo context.
const cookieTokenKey = "session_token"

// CookieOptions describes the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// SessionCookie verifies the signed session cookie. Missing or invalid cookies are not an
// error: the request simply continues without a session identifier.
func SessionCookie(codec *auth.CookieCodec, name string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		KeyFunc:     codec.Keyfunc,
		TokenLookup: "cookie:" + name,
		ContextKey:  cookieTokenKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// Session loads the server-side session for the request and commits it before the
// response is written.
func Session(m *session.Manager, codec *auth.CookieCodec, log logging.Logger, opts CookieOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var id string
			if token, ok := c.Get(cookieTokenKey).(*jwt.Token); ok {
				id, _ = auth.SessionIDFromToken(token)
			}
			st := m.Start(ctx, id)
			c.Set(handler.SessionContextKey, st)

			committed := false
			commit := func() {
				if committed {
					return
				}
				committed = true

				id, write, err := m.Commit(ctx, st)
				if err != nil {
					log.Error(ctx, "session commit error", "error", err)
					return
				}
				if !write {
					return
				}
				if id == "" {
					c.SetCookie(newCookie(opts, "", -1))
					return
				}
				value, err := codec.Sign(id)
				if err != nil {
					log.Error(ctx, "session cookie error", "error", err)
					return
				}
				c.SetCookie(newCookie(opts, value, int(opts.MaxAge.Seconds())))
			}
			c.Response().Before(commit)

			err := next(c)
			if err == nil && !c.Response().Committed {
				commit()
			}
			return err
		}
	}
}

func newCookie(opts CookieOptions, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     opts.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
