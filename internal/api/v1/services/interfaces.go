package services

import (
	"context"

	"whisper-web/internal/app/audio"
	"whisper-web/internal/app/transcription"
)

// TranscriptionService defines the interface for transcription operations.
// *transcription.Service implements it.
type TranscriptionService interface {
	Transcribe(ctx context.Context, in *audio.Input, hints transcription.Hints) (*transcription.Result, error)
	ProviderName() string
	Ready() bool
}

var _ TranscriptionService = (*transcription.Service)(nil)
