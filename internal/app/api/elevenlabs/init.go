package elevenlabs

import (
	"fmt"

	"whisper-web/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(providerName, createElevenLabsProvider)
}

func createElevenLabsProvider(config provider.ProviderConfig) (provider.TranscriptionProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("elevenlabs provider requires an api key")
	}
	return NewSTTProvider(config), nil
}
