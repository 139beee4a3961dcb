package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/calendar"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/mail"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/power"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/registry"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/settings"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/shell"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/tasks"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/vfs"
)

var errNotFound = errors.New("not found")

var (
	badRequest = []error{
		vfs.ErrNotFolder,
		vfs.ErrInvalidName,
		vfs.ErrBadPattern,
		vfs.ErrTooLarge,
		calendar.ErrInvalidEvent,
		mail.ErrInvalidEmail,
		tasks.ErrInvalidTitle,
		settings.ErrInvalidSetting,
		registry.ErrInvalidDefinition,
		shell.ErrInvalidApp,
	}
	conflict = []error{
		power.ErrInvalidTransition,
		shell.ErrNotActive,
		vfs.ErrCycle,
		vfs.ErrRootProtected,
	}
)

func statusFor(err error) int {
	if errors.Is(err, errNotFound) || errors.Is(err, vfs.ErrParentNotFound) {
		return http.StatusNotFound
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range conflict {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// fail writes the error response for err
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func invalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Invalid request: " + err.Error(),
	})
}

func missing(c *gin.Context, what string) {
	fail(c, fmt.Errorf("%s %w", what, errNotFound))
}
