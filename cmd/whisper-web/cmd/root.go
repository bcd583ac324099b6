package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"whisper-web/cmd/whisper-web/cmd/serve"
	"whisper-web/cmd/whisper-web/cmd/transcribe"
	"whisper-web/cmd/whisper-web/cmd/version"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "whisper-web",
	Short: "A small web UI that turns uploaded or recorded audio into text",
	Long: `A small web UI that turns uploaded or recorded audio into text.
- Upload an audio file or record one in the browser
- The audio is sent to the OpenAI transcription API (or Gemini)
- The transcript is shown on the page, ready to copy`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml, toml or json); environment variables still win")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")
}
