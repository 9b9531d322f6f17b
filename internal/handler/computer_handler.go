package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "c2panel/internal/errors"
	"c2panel/internal/model"
	"c2panel/internal/service"
	"c2panel/internal/session"
)

// ComputerHandler serves the per-computer console.
type ComputerHandler struct {
	computerService service.ComputerService
	commandService  service.CommandService
	sessions        *session.Manager
}

// NewComputerHandler creates a new computer handler.
func NewComputerHandler(computerService service.ComputerService, commandService service.CommandService, sessions *session.Manager) *ComputerHandler {
	return &ComputerHandler{
		computerService: computerService,
		commandService:  commandService,
		sessions:        sessions,
	}
}

// CommandRequest represents a command submitted from the console.
type CommandRequest struct {
	Command string `form:"command" json:"command" validate:"required"`
}

// Get godoc
// @Summary Get computer
// @Tags computers
// @Produce json
// @Param id path string true "Computer ID"
// @Success 200 {object} service.ComputerView
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /computers/{id} [get]
func (h *ComputerHandler) Get(c echo.Context) error {
	computer, err := h.computerService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, computer)
}

// SubmitCommand godoc
// @Summary Submit command
// @Description Records the command as pending. Commands are not executed.
// @Tags computers
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "Computer ID"
// @Param command formData string true "Command"
// @Success 202 {object} model.CommandLog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /computers/{id}/commands [post]
func (h *ComputerHandler) SubmitCommand(c echo.Context) error {
	var req CommandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	req.Command = strings.TrimSpace(req.Command)
	if err := c.Validate(&req); err != nil {
		return errorResponse(apperrors.ErrInvalidCommand)
	}

	ctx := c.Request().Context()
	computer, err := h.computerService.Get(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(err)
	}

	var userID uint
	if user := h.sessions.CurrentUser(SessionState(c)); user != nil {
		userID = user.UserID
	}

	entry, err := h.commandService.LogCommand(ctx, userID, computer.ComputerID, req.Command, nil, model.CommandStatusPending)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusAccepted, entry)
}
