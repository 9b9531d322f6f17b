package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"c2panel/internal/auth"
	"c2panel/internal/config"
	apperrors "c2panel/internal/errors"
	"c2panel/internal/handler"
	"c2panel/internal/logging"
	"c2panel/internal/session"
)

const loginLimiterExpiry = 3 * time.Minute

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log logging.Logger,
	sessions *session.Manager,
	codec *auth.CookieCodec,
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	computerHandler *handler.ComputerHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = NewValidator()

	e.GET("/healthz", healthHandler.Check)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Everything below carries the server-side session.
	web := e.Group("",
		SessionCookie(codec, cfg.SessionCookie),
		Session(sessions, codec, log, CookieOptions{
			Name:   cfg.SessionCookie,
			Secure: cfg.CookieSecure,
			MaxAge: sessions.TTL(),
		}),
	)

	// Public routes
	web.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/login")
	})
	web.GET("/login", authHandler.ShowLogin)
	web.POST("/login", authHandler.Login, LoginRateLimiter(cfg.LoginAttemptsPerMinute))
	web.GET("/logout", authHandler.Logout)

	// Any signed-in user
	web.GET("/dashboard", dashboardHandler.Show, Guard(sessions, GuardConfig{
		Target:     "/login",
		Inactivity: cfg.InactivityTimeout,
	}))

	// Computer console
	computers := web.Group("/computers")
	computers.GET("/:id", computerHandler.Get, Guard(sessions, GuardConfig{
		Role:            auth.RoleViewer,
		Target:          "/login",
		ForbiddenTarget: "/dashboard",
		Inactivity:      cfg.InactivityTimeout,
	}))
	computers.POST("/:id/commands", computerHandler.SubmitCommand, Guard(sessions, GuardConfig{
		Role:            auth.RoleOperator,
		Target:          "/login",
		ForbiddenTarget: "/dashboard",
		Inactivity:      cfg.InactivityTimeout,
	}))
}

// LoginRateLimiter throttles login attempts per client IP. A non-positive limit disables it.
func LoginRateLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perMinute) / 60),
			Burst:     perMinute,
			ExpiresIn: loginLimiterExpiry,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "unable to identify client",
				Code:  "FORBIDDEN",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Error: "too many login attempts, try again later",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the validator used for request structs.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
