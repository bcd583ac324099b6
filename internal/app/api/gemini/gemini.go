package gemini

import (
	"context"
	stderrors "errors"

	"github.com/samber/lo"
	"google.golang.org/genai"

	"whisper-web/internal/app/api/provider"
	apperrors "whisper-web/internal/app/errors"
)

const (
	providerName = "gemini"

	// DefaultModel accepts inline audio parts.
	DefaultModel = "gemini-2.0-flash"

	instruction = "Transcribe this audio verbatim. Reply with the transcript only, without commentary or formatting."
)

// Transcriber sends audio to Gemini as an inline part of a generateContent call.
type Transcriber struct {
	client   *genai.Client
	model    string
	language string
	prompt   string
}

// NewTranscriber wraps an existing genai client.
func NewTranscriber(client *genai.Client, config provider.ProviderConfig) *Transcriber {
	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	return &Transcriber{
		client:   client,
		model:    model,
		language: config.Language,
		prompt:   config.Prompt,
	}
}

// Transcribe returns the model's text response as the transcript.
func (g *Transcriber) Transcribe(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	model := g.model
	if request.Model != "" {
		model = request.Model
	}

	parts := []*genai.Part{
		genai.NewPartFromText(g.instruction(request)),
		genai.NewPartFromBytes(request.Audio, request.MIMEType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return nil, handleAPIError(err)
	}

	return &provider.TranscriptionResponse{
		Text:      resp.Text(),
		Language:  lo.CoalesceOrEmpty(request.Language, g.language),
		ModelUsed: model,
	}, nil
}

// GetProviderInfo describes the Gemini provider.
func (g *Transcriber) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:          providerName,
		DisplayName:   "Google Gemini",
		DefaultModel:  g.model,
		CredentialEnv: "GEMINI_API_KEY",
		MaxFileSizeMB: 20,
	}
}

func (g *Transcriber) instruction(request *provider.TranscriptionRequest) string {
	text := instruction
	if lang := lo.CoalesceOrEmpty(request.Language, g.language); lang != "" {
		text += " The spoken language is " + lang + "."
	}
	if prompt := lo.CoalesceOrEmpty(request.Prompt, g.prompt); prompt != "" {
		text += " Context: " + prompt
	}
	return text
}

// handleAPIError converts genai errors to a ServiceError carrying the
// upstream status and message.
func handleAPIError(err error) error {
	var apiErr genai.APIError
	if stderrors.As(err, &apiErr) {
		return apperrors.NewServiceError(providerName, apiErr.Code, lo.CoalesceOrEmpty(apiErr.Message, apiErr.Status), err)
	}

	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewServiceError(providerName, 0, "request cancelled before the service answered", err)
	}
	return apperrors.NewServiceError(providerName, 0, err.Error(), err)
}
