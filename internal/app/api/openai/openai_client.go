package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient builds an OpenAI client for apiKey. A non-empty baseURL replaces
// the public endpoint, e.g. for a compatible self-hosted server.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}
