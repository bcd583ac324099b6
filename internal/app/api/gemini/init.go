package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"whisper-web/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(providerName, createGeminiProvider)
}

func createGeminiProvider(config provider.ProviderConfig) (provider.TranscriptionProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini provider requires an api key")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL + "/"}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewTranscriber(client, config), nil
}
