package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper-web/internal/api/middleware"
	"whisper-web/internal/api/upload"
	"whisper-web/internal/api/v1/dto"
	"whisper-web/internal/api/v1/services"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Create handles POST /api/v1/transcriptions.
// It takes a multipart form with an "audio" file and optional "language"
// and "prompt" fields, and answers with the transcript or an APIError.
func (h *TranscriptionHandler) Create(c *gin.Context) {
	in, err := upload.ReadAudio(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	var form dto.TranscriptionForm
	if err := middleware.ValidateForm(c, &form); err != nil {
		middleware.HandleError(c, err)
		return
	}

	result, err := h.service.Transcribe(c.Request.Context(), in, form.Hints())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTranscriptionResponse(result))
}
