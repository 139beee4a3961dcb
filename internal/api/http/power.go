package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/power"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/shell"
)

// PowerState reports the power state and the view it maps to
func (h *Handlers) PowerState(c *gin.Context) {
	state := h.shell.Power.State()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state":   state,
		"view":    shell.ViewFor(state),
	})
}

// PowerAction applies lock, unlock, sleep, wake, shutdown or restart
func (h *Handlers) PowerAction(c *gin.Context) {
	action, ok := power.ParseAction(c.Param("action"))
	if !ok {
		invalid(c, fmt.Errorf("unknown power action %q", c.Param("action")))
		return
	}

	state, err := h.shell.Power.Apply(c.Request.Context(), action)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state":   state,
		"view":    shell.ViewFor(state),
	})
}

// SignOut clears the session and reloads the shell
func (h *Handlers) SignOut(c *gin.Context) {
	if err := h.shell.Power.SignOut(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state":   h.shell.Power.State(),
	})
}
