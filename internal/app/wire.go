//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"whisper-web/internal/api/server"
	"whisper-web/internal/api/v1/services"
	"whisper-web/internal/app/metrics"
	"whisper-web/internal/app/transcription"
	"whisper-web/internal/config"
)

var transcriptionSet = wire.NewSet(
	metrics.New,
	transcription.NewServiceFromConfig,
)

// InitializeServer builds the HTTP server with its transcription service.
func InitializeServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	wire.Build(
		transcriptionSet,
		provideServerConfig,
		wire.Bind(new(services.TranscriptionService), new(*transcription.Service)),
		server.NewServer,
	)
	return &server.Server{}, nil
}

// InitializeTranscriptionService builds the service used by the one-shot CLI.
func InitializeTranscriptionService(cfg *config.Config, logger *zap.Logger) (*transcription.Service, error) {
	wire.Build(transcriptionSet)
	return &transcription.Service{}, nil
}
