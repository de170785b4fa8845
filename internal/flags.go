package internal

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// AddServerFlags adds flags that configure the MCP server process
func AddServerFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	cmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	_ = v.BindPFlag("transport", cmd.Flags().Lookup("transport"))
	_ = v.BindPFlag("port", cmd.Flags().Lookup("port"))
}

// AddDownloaderFlags adds flags shared by every command that runs yt-dlp
func AddDownloaderFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.PersistentFlags().String("args", "", `Extra yt-dlp arguments applied to every download, e.g. --args "--cookies-from-browser firefox"`)
	cmd.PersistentFlags().String("ytdlp-path", "", "Path to the yt-dlp binary")
	cmd.PersistentFlags().Bool("auto-install", false, "Download yt-dlp if it cannot be found")
	_ = v.BindPFlag("ytdlp_args", cmd.PersistentFlags().Lookup("args"))
	_ = v.BindPFlag("ytdlp_path", cmd.PersistentFlags().Lookup("ytdlp-path"))
	_ = v.BindPFlag("auto_install", cmd.PersistentFlags().Lookup("auto-install"))
}

// AddTranscriptFlags adds flags for commands that print or copy a transcript
func AddTranscriptFlags(cmd *cobra.Command) {
	cmd.Flags().String("extra-args", "", "Extra yt-dlp arguments for this download only")
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if verbose {
		config.Verbose = true
	}
	return nil
}
