package internal

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrNoTranscript is returned by the CLI path when yt-dlp produced no usable
// subtitle text
var ErrNoTranscript = errors.New("no subtitles available")

// App holds the application state and dependencies
type App struct {
	downloader SubtitleDownloader
	service    *TranscriptService
	config     *Config
	logger     *logrus.Logger
	ui         UIManager
}

// AppOption customizes App creation
type AppOption func(*App)

// WithDownloader sets a custom subtitle downloader
func WithDownloader(downloader SubtitleDownloader) AppOption {
	return func(a *App) {
		a.downloader = downloader
	}
}

// WithUI sets a custom UI manager
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// NewApp initializes the application
func NewApp(config *Config, logger *logrus.Logger, options ...AppOption) *App {
	app := &App{
		downloader: NewYTDLP(config.YTDLPPath, logger),
		config:     config,
		logger:     logger,
		ui:         NewUIManager(config.Quiet),
	}

	for _, option := range options {
		option(app)
	}

	serviceOptions := append(config.ServiceOptions(), WithLogger(logger))
	app.service = NewTranscriptService(app.downloader, serviceOptions...)

	if args := app.service.StartupArgs(); len(args) > 0 {
		logger.WithField("args", args).Info("Extra yt-dlp arguments")
	}

	return app
}

// EnsureYTDLP installs yt-dlp when auto_install is enabled and no explicit
// path is configured
func (app *App) EnsureYTDLP(ctx context.Context) error {
	if !app.config.AutoInstall || app.config.YTDLPPath != "" {
		return nil
	}

	path, err := InstallYTDLP(ctx)
	if err != nil {
		return err
	}
	app.logger.WithField("path", path).Debug("yt-dlp available")
	return nil
}

// Service returns the transcript service
func (app *App) Service() *TranscriptService {
	return app.service
}

// Serve runs the MCP server until ctx is cancelled or the transport closes
func (app *App) Serve(ctx context.Context, version string) error {
	mcpServer := NewMCPServer(app.service, version, app.logger, app.config.AllowedOrigins)

	err := mcpServer.Start(ctx, app.config.Transport, app.config.Port)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// GetTranscript fetches transcripts for a CLI argument (URL or ID) with a
// status spinner
func (app *App) GetTranscript(ctx context.Context, arg, extraArgs string) (*Transcripts, error) {
	youtubeURL := ParseArg(arg)

	label := youtubeURL
	if id, err := VideoID(youtubeURL); err == nil {
		label = id
	}
	spinner := app.ui.NewSpinner(fmt.Sprintf("Downloading subtitles for %s...", label))

	transcripts, err := app.service.FetchTranscript(ctx, youtubeURL, extraArgs)
	if err != nil {
		spinner.Finish()
		return nil, err
	}

	spinner.Describe(fmt.Sprintf("Cleaned %d subtitle file(s)", len(transcripts.Files)))
	spinner.Finish()

	if transcripts.IsEmpty() {
		return nil, fmt.Errorf("%w for %s", ErrNoTranscript, label)
	}

	return transcripts, nil
}
