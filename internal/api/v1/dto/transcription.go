package dto

import (
	"strings"

	"whisper-web/internal/app/transcription"
)

// TranscriptionForm holds the optional text fields sent with the audio.
type TranscriptionForm struct {
	Language string `form:"language" binding:"omitempty,alpha,min=2,max=16"`
	Prompt   string `form:"prompt" binding:"omitempty,max=2000"`
}

// Hints converts the form into per-request transcription hints.
func (f TranscriptionForm) Hints() transcription.Hints {
	return transcription.Hints{
		Language: strings.ToLower(strings.TrimSpace(f.Language)),
		Prompt:   strings.TrimSpace(f.Prompt),
	}
}

// TranscriptionResponse is the JSON body of a successful transcription.
// Text is always present, even when empty.
type TranscriptionResponse struct {
	Text             string  `json:"text"`
	Language         string  `json:"language,omitempty"`
	DurationSeconds  float64 `json:"duration_seconds"`
	DurationMinutes  string  `json:"duration_minutes"`
	EstimatedCostUSD string  `json:"estimated_cost_usd"`
	Provider         string  `json:"provider"`
	Model            string  `json:"model,omitempty"`
	ProcessingMs     int64   `json:"processing_ms"`
}

// ToTranscriptionResponse converts a service result to its response DTO
func ToTranscriptionResponse(r *transcription.Result) TranscriptionResponse {
	return TranscriptionResponse{
		Text:             r.Text,
		Language:         r.Language,
		DurationSeconds:  r.Duration.Seconds(),
		DurationMinutes:  r.Estimate.MinutesString(),
		EstimatedCostUSD: r.Estimate.CostString(),
		Provider:         r.Provider,
		Model:            r.Model,
		ProcessingMs:     r.ProcessingTime.Milliseconds(),
	}
}
