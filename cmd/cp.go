package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytsubs/internal"
)

// cpCmd copies the transcript to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [URL or ID]",
	Short: "Copy the subtitle transcript of a video to the clipboard",
	Example: `  # Copy transcript from YouTube captions
  ytsubs cp "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytsubs cp tAP1eZYEuKA`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config, logger)

		transcripts, err := fetchTranscript(cmd, app, args[0])
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(transcripts.String()); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Fprintln(os.Stderr, "Transcript copied to clipboard")
		}

		return nil
	},
}

func init() {
	internal.AddTranscriptFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
