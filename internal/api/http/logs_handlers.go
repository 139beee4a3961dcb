package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

// maxLogBatch caps how many renderer entries one request may carry
const maxLogBatch = 100

// UILogEntry is one console line forwarded by the renderer
type UILogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context"`
	Timestamp string                 `json:"timestamp"`
}

// UILogStreamRequest is a batch of renderer log lines
type UILogStreamRequest struct {
	Source  string       `json:"source"`
	Entries []UILogEntry `json:"entries"`
}

// StreamLogs writes renderer logs into the backend log under the "ui" name
func (h *Handlers) StreamLogs(c *gin.Context) {
	var req UILogStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	if len(req.Entries) == 0 || len(req.Entries) > maxLogBatch {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "entries must hold between 1 and 100 lines",
		})
		return
	}

	log := h.logger.For("ui").With(zap.String("source", req.Source))
	for _, entry := range req.Entries {
		fields := make([]zap.Field, 0, len(entry.Context)+1)
		fields = append(fields, zap.String("ui_timestamp", entry.Timestamp))
		for key, value := range entry.Context {
			fields = append(fields, zap.Any(key, value))
		}

		msg := utils.SanitizeText(entry.Message)
		switch entry.Level {
		case "error":
			log.Error(msg, fields...)
		case "warn":
			log.Warn(msg, fields...)
		case "debug", "verbose":
			log.Debug(msg, fields...)
		default:
			log.Info(msg, fields...)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"entries_received": len(req.Entries),
		"timestamp":        time.Now().Unix(),
	})
}
