package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/ytsubs/internal"
)

// fetchTranscript installs yt-dlp if configured to and fetches the transcripts for arg
func fetchTranscript(cmd *cobra.Command, app *internal.App, arg string) (*internal.Transcripts, error) {
	if err := app.EnsureYTDLP(cmd.Context()); err != nil {
		return nil, err
	}

	extraArgs, _ := cmd.Flags().GetString("extra-args")
	return app.GetTranscript(cmd.Context(), arg, extraArgs)
}
