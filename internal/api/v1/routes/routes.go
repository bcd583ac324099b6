package routes

import (
	"github.com/gin-gonic/gin"

	"whisper-web/internal/api/upload"
	"whisper-web/internal/api/v1/handlers"
	"whisper-web/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	MaxUploadBytes       int64
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("", upload.Limit(container.MaxUploadBytes), transcriptionHandler.Create)
	}
}
