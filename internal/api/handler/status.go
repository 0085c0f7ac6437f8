package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// bannerText is served on the root path for anyone poking at the host.
const bannerText = "MemeZvukachBot is alive! 🔥 Check it out on Telegram!"

// StatusHandler handles keep-alive endpoints
type StatusHandler struct{}

// NewStatusHandler creates a new status handler
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Banner returns the human-readable liveness banner
func (h *StatusHandler) Banner(c *gin.Context) {
	c.String(http.StatusOK, bannerText)
}

// Health returns the health status of the service
func (h *StatusHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
