package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvPaths are the .env candidates tried in order; the first one found wins.
var EnvPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from the first .env file found.
// Variables already present in the process environment are not overridden.
// It returns the path that was loaded, or "" when no file exists.
func LoadEnv() (string, error) {
	for _, envPath := range EnvPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}
