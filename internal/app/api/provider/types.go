package provider

import (
	"time"
)

// TranscriptionRequest carries one audio payload to a provider.
type TranscriptionRequest struct {
	Audio    []byte `json:"-"`
	Filename string `json:"filename"`  // extension matches the container
	MIMEType string `json:"mime_type"` // canonical type of the container

	Language string `json:"language,omitempty"` // ISO-639-1 hint, empty means auto
	Model    string `json:"model,omitempty"`    // overrides the provider default
	Prompt   string `json:"prompt,omitempty"`   // context prompt for better accuracy
}

// TranscriptionResponse represents the response from a transcription provider
type TranscriptionResponse struct {
	// Text is returned verbatim from the upstream service.
	Text string `json:"text"`

	// Metadata, zero when the upstream does not report it.
	Language string        `json:"language,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`

	ModelUsed string `json:"model_used,omitempty"`
}

// ProviderInfo contains metadata about a transcription provider
type ProviderInfo struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	DefaultModel  string `json:"default_model"`
	CredentialEnv string `json:"credential_env"`
	MaxFileSizeMB int    `json:"max_file_size_mb,omitempty"` // 0 means no limit
}

// ProviderConfig is the input to a ProviderCreator.
type ProviderConfig struct {
	APIKey   string
	BaseURL  string // empty means the public endpoint
	Model    string // empty means the provider default
	Language string
	Prompt   string
}
