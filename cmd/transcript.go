package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytsubs/internal"
)

// transcriptCmd prints the cleaned transcript for a video
var transcriptCmd = &cobra.Command{
	Use:   "transcript [URL or ID]",
	Short: "Print the subtitle transcript of a video",
	Example: `  # Print transcript from YouTube captions
  ytsubs transcript "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytsubs transcript tAP1eZYEuKA

  # Save transcript to file
  ytsubs transcript tAP1eZYEuKA -o transcript.txt

  # Render with one heading per subtitle file
  ytsubs transcript tAP1eZYEuKA --pretty

  # Pass extra yt-dlp arguments for this download
  ytsubs transcript tAP1eZYEuKA --extra-args "--cookies-from-browser firefox"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config, logger)

		transcripts, err := fetchTranscript(cmd, app, args[0])
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcripts.String()), 0644)
		}

		pretty, _ := cmd.Flags().GetBool("pretty")
		if pretty {
			rendered, err := internal.RenderMarkdown(transcripts.Markdown())
			if err != nil {
				return err
			}
			fmt.Print(rendered)
			return nil
		}

		fmt.Println(transcripts.String())
		return nil
	},
}

func init() {
	internal.AddTranscriptFlags(transcriptCmd)
	transcriptCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	transcriptCmd.Flags().Bool("pretty", false, "Render transcript as markdown in the terminal")
	rootCmd.AddCommand(transcriptCmd)
}
