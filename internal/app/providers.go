package app

import (
	"fmt"

	"go.uber.org/zap"

	"whisper-web/internal/app/common"
	"whisper-web/internal/config"
)

func provideServerConfig(cfg *config.Config) config.ServerConfig {
	return cfg.Server
}

// LoadRuntime loads configuration and builds the logger shared by all
// commands. verbose forces the development logger.
func LoadRuntime(configFile string, verbose bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(config.Options{ConfigFile: configFile})
	if err != nil {
		return nil, nil, err
	}

	logger, err := common.NewLogger(cfg.Log.Development || verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
