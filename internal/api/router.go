package api

import (
	"github.com/gin-gonic/gin"

	"github.com/timmy/memezvukach/internal/api/handler"
	"github.com/timmy/memezvukach/internal/api/middleware"
)

// SetupRouter configures the Gin router for the keep-alive surface.
// The bot talks to Telegram over long polling; these endpoints exist so
// uptime monitors can verify the process is up.
func SetupRouter(mode string) *gin.Engine {
	// Set Gin mode
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	statusHandler := handler.NewStatusHandler()

	r.GET("/", statusHandler.Banner)
	r.GET("/health", statusHandler.Health)

	return r
}
