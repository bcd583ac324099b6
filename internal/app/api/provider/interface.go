package provider

import (
	"context"
)

// TranscriptionProvider is one upstream speech-to-text service.
//
// Transcribe makes exactly one outbound call. Failures are returned as
// *errors.ServiceError so callers can show the upstream message; providers
// never retry.
type TranscriptionProvider interface {
	Transcribe(ctx context.Context, request *TranscriptionRequest) (*TranscriptionResponse, error)

	GetProviderInfo() ProviderInfo
}
