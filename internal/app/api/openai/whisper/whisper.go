package whisper

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"

	"whisper-web/internal/app/api/provider"
	apperrors "whisper-web/internal/app/errors"
)

const providerName = "openai"

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client   *openai.Client
	model    string
	language string
	prompt   string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, config provider.ProviderConfig) *RemoteTranscriber {
	model := config.Model
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{
		client:   client,
		model:    model,
		language: config.Language,
		prompt:   config.Prompt,
	}
}

// Transcribe sends the audio to /audio/transcriptions and returns the text
// exactly as OpenAI produced it.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	model := rt.model
	if request.Model != "" {
		model = request.Model
	}

	audioRequest := openai.AudioRequest{
		Model:    model,
		FilePath: request.Filename,
		Reader:   bytes.NewReader(request.Audio),
		Language: lo.CoalesceOrEmpty(request.Language, rt.language),
		Prompt:   lo.CoalesceOrEmpty(request.Prompt, rt.prompt),
		Format:   responseFormat(model),
	}

	resp, err := rt.client.CreateTranscription(ctx, audioRequest)
	if err != nil {
		return nil, handleAPIError(err)
	}

	return &provider.TranscriptionResponse{
		Text:      resp.Text,
		Language:  resp.Language,
		Duration:  time.Duration(resp.Duration * float64(time.Second)),
		ModelUsed: model,
	}, nil
}

// GetProviderInfo describes the OpenAI provider.
func (rt *RemoteTranscriber) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:          providerName,
		DisplayName:   "OpenAI Whisper",
		DefaultModel:  rt.model,
		CredentialEnv: "OPENAI_API_KEY",
		MaxFileSizeMB: 25,
	}
}

// responseFormat asks for verbose_json where the model supports it, so the
// language and duration come back with the text. The gpt-4o transcribe
// models only speak json.
func responseFormat(model string) openai.AudioResponseFormat {
	if strings.HasPrefix(model, "whisper") {
		return openai.AudioResponseFormatVerboseJSON
	}
	return openai.AudioResponseFormatJSON
}

// handleAPIError converts OpenAI client errors to a ServiceError carrying the
// upstream message.
func handleAPIError(err error) error {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) {
		return apperrors.NewServiceError(providerName, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if stderrors.As(err, &reqErr) {
		message := http.StatusText(reqErr.HTTPStatusCode)
		if body := strings.TrimSpace(string(reqErr.Body)); body != "" {
			message = body
		} else if reqErr.Err != nil {
			message = reqErr.Err.Error()
		}
		return apperrors.NewServiceError(providerName, reqErr.HTTPStatusCode, message, err)
	}

	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewServiceError(providerName, 0, "request cancelled before the service answered", err)
	}

	return apperrors.NewServiceError(providerName, 0, err.Error(), err)
}
