// Package web serves the single-page upload and recording UI.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "whisper-web/internal/api/errors"
	"whisper-web/internal/api/middleware"
	"whisper-web/internal/api/upload"
	"whisper-web/internal/api/v1/dto"
	"whisper-web/internal/api/v1/services"
	"whisper-web/internal/app/audio"
	apperrors "whisper-web/internal/app/errors"
)

const pageTemplate = "index.html.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

// StaticFS exposes the embedded recorder script and stylesheet.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// PageData is everything the page template renders.
type PageData struct {
	Provider    string
	Ready       bool
	Accept      string
	Formats     []string
	MaxUploadMB int64
	Language    string
	Prompt      string
	Result      *dto.TranscriptionResponse
	Error       string
	ErrorKind   string
	RequestID   string
}

// PageHandler renders the page and handles the plain form submission.
type PageHandler struct {
	service        services.TranscriptionService
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewPageHandler creates the UI handler.
func NewPageHandler(service services.TranscriptionService, maxUploadBytes int64, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Register installs the templates, static assets and page routes on engine.
func (h *PageHandler) Register(engine *gin.Engine) {
	engine.SetHTMLTemplate(Templates())
	engine.StaticFS("/static", StaticFS())
	engine.GET("/", h.Index)
	engine.POST("/transcribe", upload.Limit(h.maxUploadBytes), h.Transcribe)
}

// Index handles GET /.
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplate, h.pageData(c))
}

// Transcribe handles POST /transcribe and re-renders the page with either the
// transcript or an error banner. Failures never leave the page unusable.
func (h *PageHandler) Transcribe(c *gin.Context) {
	data := h.pageData(c)

	var form dto.TranscriptionForm
	in, err := upload.ReadAudio(c)
	if err == nil {
		err = middleware.ValidateForm(c, &form)
	}
	data.Language = form.Language
	data.Prompt = form.Prompt

	if err == nil {
		result, transcribeErr := h.service.Transcribe(c.Request.Context(), in, form.Hints())
		if transcribeErr == nil {
			response := dto.ToTranscriptionResponse(result)
			data.Result = &response
			c.HTML(http.StatusOK, pageTemplate, data)
			return
		}
		err = transcribeErr
	}

	apiErr := apierrors.FromError(err)
	data.Error = bannerMessage(err, apiErr)
	data.ErrorKind = string(apiErr.Kind)
	_ = c.Error(err)
	h.logger.Debug("Rendering error banner",
		zap.String("request_id", data.RequestID),
		zap.String("kind", data.ErrorKind),
	)
	c.HTML(apiErr.HTTPStatus(), pageTemplate, data)
}

func (h *PageHandler) pageData(c *gin.Context) PageData {
	return PageData{
		Provider:    h.service.ProviderName(),
		Ready:       h.service.Ready(),
		Accept:      audio.Accept(),
		Formats:     audio.FormatNames(),
		MaxUploadMB: h.maxUploadBytes >> 20,
		RequestID:   c.GetString(middleware.RequestIDKey),
	}
}

// bannerMessage prefers the domain wording and falls back to the API
// envelope message for HTTP-level failures.
func bannerMessage(err error, apiErr *apierrors.APIError) string {
	switch apiErr.Kind {
	case apierrors.KindMissingCredential, apierrors.KindUnsupportedMedia, apierrors.KindTranscriptionService:
		return apperrors.UserMessage(err)
	case apierrors.KindValidation:
		msg := apiErr.Message
		for field, problem := range apiErr.Details {
			msg += ": " + field + " " + problem
		}
		return msg
	default:
		return apiErr.Message
	}
}
