package main

import (
	"fmt"
	"os"

	"whisper-web/cmd/whisper-web/cmd"
	"whisper-web/internal/config"

	// Import providers to register them
	_ "whisper-web/internal/app/api/elevenlabs"
	_ "whisper-web/internal/app/api/gemini"
	_ "whisper-web/internal/app/api/openai/whisper"
)

func main() {
	// Load .env (non-blocking - missing keys are reported per request)
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
