package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"whisper-web/internal/app/api/provider"
	apperrors "whisper-web/internal/app/errors"
)

const (
	providerName = "elevenlabs"

	// DefaultBaseURL is the public API root; the endpoint path is appended.
	DefaultBaseURL = "https://api.elevenlabs.io/v1"

	// DefaultModel is the ElevenLabs speech-to-text model.
	DefaultModel = "scribe_v1"
)

// STTProvider calls the ElevenLabs speech-to-text endpoint.
type STTProvider struct {
	client   *http.Client
	apiKey   string
	baseURL  string
	model    string
	language string
}

// sttResponse is the subset of the speech-to-text response we use.
type sttResponse struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
	Words        []word `json:"words"`
}

type validationEntry struct {
	Msg string `json:"msg"`
}

type word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewSTTProvider creates a provider. The HTTP client has no timeout of its
// own; the request context bounds each call.
func NewSTTProvider(config provider.ProviderConfig) *STTProvider {
	return &STTProvider{
		client:   &http.Client{},
		apiKey:   config.APIKey,
		baseURL:  strings.TrimSuffix(lo.CoalesceOrEmpty(config.BaseURL, DefaultBaseURL), "/"),
		model:    lo.CoalesceOrEmpty(config.Model, DefaultModel),
		language: config.Language,
	}
}

// Transcribe uploads the audio and returns the text verbatim. Duration is
// taken from the end of the last timed word.
func (el *STTProvider) Transcribe(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	model := lo.CoalesceOrEmpty(request.Model, el.model)

	httpReq, err := el.newRequest(ctx, request, model)
	if err != nil {
		return nil, apperrors.NewServiceError(providerName, 0, err.Error(), err)
	}

	resp, err := el.client.Do(httpReq)
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewServiceError(providerName, 0, "request cancelled before the service answered", err)
		}
		return nil, apperrors.NewServiceError(providerName, 0, err.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, handleHTTPError(resp)
	}

	var parsed sttResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewServiceError(providerName, 0, "unreadable response: "+err.Error(), err)
	}

	return &provider.TranscriptionResponse{
		Text:      parsed.Text,
		Language:  parsed.LanguageCode,
		Duration:  spokenDuration(parsed.Words),
		ModelUsed: model,
	}, nil
}

// GetProviderInfo describes the ElevenLabs provider.
func (el *STTProvider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:          providerName,
		DisplayName:   "ElevenLabs Speech-to-Text",
		DefaultModel:  el.model,
		CredentialEnv: "ELEVENLABS_API_KEY",
		MaxFileSizeMB: 3000,
	}
}

func (el *STTProvider) newRequest(ctx context.Context, request *provider.TranscriptionRequest, model string) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", lo.CoalesceOrEmpty(request.Filename, "audio"))
	if err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	if _, err := part.Write(request.Audio); err != nil {
		return nil, fmt.Errorf("write audio: %w", err)
	}
	if err := writer.WriteField("model_id", model); err != nil {
		return nil, fmt.Errorf("write model_id: %w", err)
	}
	if language := lo.CoalesceOrEmpty(request.Language, el.language); language != "" {
		if err := writer.WriteField("language_code", language); err != nil {
			return nil, fmt.Errorf("write language_code: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, el.baseURL+"/speech-to-text", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", el.apiKey)
	return req, nil
}

// handleHTTPError extracts the upstream message from the error body. The API
// answers with {"detail":{"message":...}}, a list of validation entries, or
// a bare string.
func handleHTTPError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	message := ""
	if json.Unmarshal(raw, &envelope) == nil && len(envelope.Detail) > 0 {
		message = detailMessage(envelope.Detail)
	}
	if message == "" {
		message = lo.CoalesceOrEmpty(strings.TrimSpace(string(raw)), http.StatusText(resp.StatusCode))
	}
	return apperrors.NewServiceError(providerName, resp.StatusCode, message, nil)
}

func detailMessage(detail json.RawMessage) string {
	var object struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}
	if json.Unmarshal(detail, &object) == nil {
		return lo.CoalesceOrEmpty(object.Message, object.Status)
	}

	var entries []validationEntry
	if json.Unmarshal(detail, &entries) == nil {
		return strings.Join(lo.FilterMap(entries, func(e validationEntry, _ int) (string, bool) {
			return e.Msg, e.Msg != ""
		}), "; ")
	}

	var text string
	if json.Unmarshal(detail, &text) == nil {
		return text
	}
	return ""
}

func spokenDuration(words []word) time.Duration {
	if len(words) == 0 {
		return 0
	}
	end := lo.MaxBy(words, func(a, b word) bool { return a.End > b.End }).End
	return time.Duration(end * float64(time.Second))
}
