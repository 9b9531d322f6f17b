package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "c2panel/internal/errors"
	"c2panel/internal/logging"
	"c2panel/internal/service"
	"c2panel/internal/session"
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
	log         logging.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *session.Manager, log logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, log: log}
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// LoginPageResponse is what the login page shows.
type LoginPageResponse struct {
	Message string `json:"message,omitempty"`
	Flash   string `json:"flash,omitempty"`
}

// ShowLogin godoc
// @Summary Login page
// @Description Sweeps expired sessions. Authenticated users are sent to the dashboard.
// @Tags auth
// @Produce json
// @Param message query string false "Reason code from a previous redirect"
// @Success 200 {object} LoginPageResponse
// @Success 302
// @Router /login [get]
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	ctx := c.Request().Context()
	_, _ = h.sessions.CleanupExpiredSessions(ctx)

	st := SessionState(c)
	if h.sessions.IsAuthenticated(st) {
		return c.Redirect(http.StatusFound, dashboardPath)
	}

	return c.JSON(http.StatusOK, LoginPageResponse{
		Message: c.QueryParam("message"),
		Flash:   h.sessions.TakeFlash(st),
	})
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "email and password are required",
			Code:  "VALIDATION_ERROR",
		})
	}

	ctx := c.Request().Context()
	identity, err := h.authService.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		// Storage failures look like bad credentials to the client.
		if errors.Is(err, apperrors.ErrStorageUnavailable) {
			err = apperrors.ErrInvalidCredentials
		}
		return errorResponse(err)
	}

	st := SessionState(c)
	client := session.ClientInfo{IPAddress: c.RealIP(), UserAgent: c.Request().UserAgent()}
	if err := h.sessions.Login(ctx, st, *identity, client); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "login failed, please try again",
			Code:  "LOGIN_FAILED",
		})
	}

	h.log.Info(ctx, "user login", "username", identity.Username, "user_id", identity.ID, "ip", client.IPAddress)
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

// Logout godoc
// @Summary Log out
// @Description Ends the session and redirects to the login page, forwarding the optional message.
// @Tags auth
// @Param message query string false "Message forwarded to the login page"
// @Success 302
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	st := SessionState(c)

	if user := h.sessions.CurrentUser(st); user != nil {
		h.log.Info(ctx, "user logout", "username", user.Username, "user_id", user.UserID, "ip", c.RealIP())
	}
	h.sessions.Logout(ctx, st, "")

	header := c.Response().Header()
	header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	header.Set("Pragma", "no-cache")
	header.Set("Expires", "0")

	return c.Redirect(http.StatusFound, session.WithMessage(loginPath, c.QueryParam("message")))
}
