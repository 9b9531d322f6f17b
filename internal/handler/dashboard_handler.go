package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"c2panel/internal/service"
	"c2panel/internal/session"
)

// DashboardHandler serves the dashboard.
type DashboardHandler struct {
	computerService service.ComputerService
	sessions        *session.Manager
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(computerService service.ComputerService, sessions *session.Manager) *DashboardHandler {
	return &DashboardHandler{computerService: computerService, sessions: sessions}
}

// DashboardUser is the signed-in user shown on the dashboard.
type DashboardUser struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// DashboardResponse is the dashboard payload.
type DashboardResponse struct {
	User      DashboardUser          `json:"user"`
	Welcome   string                 `json:"welcome"`
	Message   string                 `json:"message,omitempty"`
	Computers []service.ComputerView `json:"computers"`
	Stats     service.ComputerStats  `json:"stats"`
}

// Show godoc
// @Summary Dashboard
// @Tags dashboard
// @Produce json
// @Param message query string false "Reason code from a previous redirect"
// @Success 200 {object} DashboardResponse
// @Success 302
// @Router /dashboard [get]
func (h *DashboardHandler) Show(c echo.Context) error {
	user := h.sessions.CurrentUser(SessionState(c))
	if user == nil {
		return c.Redirect(http.StatusFound, loginPath)
	}

	computers, err := h.computerService.List(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		User: DashboardUser{
			ID:       user.UserID,
			Email:    user.Email,
			Username: user.Username,
			Role:     user.Role,
		},
		Welcome:   service.WelcomeMessage(user.Role),
		Message:   c.QueryParam("message"),
		Computers: computers,
		Stats:     service.Stats(computers),
	})
}
