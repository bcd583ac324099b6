package whisper

import (
	"fmt"

	"whisper-web/internal/app/api/openai"
	"whisper-web/internal/app/api/provider"
)

func init() {
	// Register openai provider with the factory
	provider.RegisterProvider(providerName, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper provider from configuration
func createOpenAIProvider(config provider.ProviderConfig) (provider.TranscriptionProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("openai provider requires an api key")
	}
	return NewRemoteTranscriber(openai.NewClient(config.APIKey, config.BaseURL), config), nil
}
