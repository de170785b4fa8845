package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytsubs/internal"
)

var (
	v         = internal.NewViper(internal.DefaultConfigDir())
	config    *internal.Config
	logger    *logrus.Logger
	logCloser io.Closer
)

// rootCmd runs the MCP server when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytsubs",
	Short: "MCP server that reads YouTube subtitles",
	Long: `ytsubs exposes a single MCP tool, download_youtube_url, that downloads the
English subtitles of a video with yt-dlp and returns them as plain text.

Run without a subcommand to serve MCP on stdio (the default) or HTTP.
The transcript and cp subcommands run the same pipeline from the terminal.`,
	Example: `  # Serve MCP on stdio (e.g. for Claude Desktop)
  ytsubs

  # Pass extra yt-dlp arguments to every download
  ytsubs --args "--cookies-from-browser firefox"

  # Serve MCP over HTTP on port 8080
  ytsubs --transport=http --port=8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")

		var err error
		config, err = internal.LoadConfig(v, configFile)
		if err != nil {
			return err
		}
		if err := internal.HandleVerboseFlag(cmd, config); err != nil {
			return err
		}

		logger, logCloser, err = internal.NewLogger(config)
		if err != nil {
			return err
		}
		if configFile := v.ConfigFileUsed(); configFile != "" {
			logger.WithField("file", configFile).Debug("Using config file")
		}
		return nil
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config, logger)
		if err := app.EnsureYTDLP(cmd.Context()); err != nil {
			return err
		}

		// Start the server (this will block until context is cancelled)
		return app.Serve(cmd.Context(), version)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Cancelling the context stops the transport and kills any running yt-dlp;
	// in-flight calls still remove their scratch directories on the way out.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Ensure default config exists in XDG config directory
	if err := internal.EnsureDefaultConfig(internal.DefaultConfigDir()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	// cobra skips post-run hooks when RunE fails.
	defer closeLogFile()

	return rootCmd.ExecuteContext(ctx)
}

// closeLogFile releases the log file opened by PersistentPreRunE, if any
func closeLogFile() {
	if logCloser == nil {
		return
	}
	if err := logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to close log file: %v\n", err)
	}
	logCloser = nil
}

func init() {
	internal.AddServerFlags(rootCmd, v)
	internal.AddDownloaderFlags(rootCmd, v)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress status output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/ytsubs/config.toml)")
	_ = v.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}
