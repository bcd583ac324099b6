package transcribe

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"whisper-web/internal/app"
	"whisper-web/internal/app/audio"
	"whisper-web/internal/app/common"
	apperrors "whisper-web/internal/app/errors"
	"whisper-web/internal/app/transcription"
)

var (
	language   string
	prompt     string
	noProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&language, "language", "l", "", "spoken language hint, e.g. en")
	Cmd.Flags().StringVar(&prompt, "prompt", "", "context or spelling hints for the model")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress spinner")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe one audio file from the terminal",
	Long: `Transcribe one audio file with the same checks and provider as the web UI.

The transcript is printed to stdout; duration and estimated cost go to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg, logger, err := app.LoadRuntime(configFile, verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read audio: %w", err)
		}

		svc, err := app.InitializeTranscriptionService(cfg, logger)
		if err != nil {
			return err
		}

		in := &audio.Input{
			Data:      data,
			MediaType: mime.TypeByExtension(filepath.Ext(path)),
			Filename:  filepath.Base(path),
		}

		stderr := cmd.ErrOrStderr()
		spinner := common.StartSpinner(stderr, "Transcribing "+in.Filename, common.ShouldShowProgress(noProgress))
		result, err := svc.Transcribe(cmd.Context(), in, transcription.Hints{Language: language, Prompt: prompt})
		spinner.Stop()
		if err != nil {
			fmt.Fprintln(stderr, apperrors.UserMessage(err))
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		fmt.Fprintf(stderr, "provider=%s model=%s duration=%s min estimated_cost=$%s processing=%s\n",
			result.Provider, result.Model, result.Estimate.MinutesString(), result.Estimate.CostString(), result.ProcessingTime)
		return nil
	},
}
