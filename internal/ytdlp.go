package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"
)

// SubtitleLanguage and SubtitleFormat are fixed: the normalizer only
// understands WebVTT.
const (
	SubtitleLanguage = "en"
	SubtitleFormat   = "vtt"
)

// ErrDownloadFailed is returned when yt-dlp exits with an error
var ErrDownloadFailed = errors.New("subtitle download failed")

// SubtitleDownloader populates dir with subtitle files for a video URL.
// extraArgs are passed to the downloader verbatim, before the URL.
type SubtitleDownloader interface {
	DownloadSubtitles(ctx context.Context, url string, extraArgs []string, dir string) error
}

// YTDLP downloads subtitles with the yt-dlp binary
type YTDLP struct {
	executable string
	logger     *logrus.Entry
}

// NewYTDLP creates a yt-dlp backed downloader. An empty executable lets
// go-ytdlp resolve the binary from its cache or PATH.
func NewYTDLP(executable string, logger *logrus.Logger) *YTDLP {
	return &YTDLP{
		executable: executable,
		logger:     logger.WithField("component", "ytdlp"),
	}
}

// DownloadSubtitles runs yt-dlp with the subtitle-only flag set inside dir
func (y *YTDLP) DownloadSubtitles(ctx context.Context, url string, extraArgs []string, dir string) error {
	dl := ytdlp.New().
		WriteSubs().                   // Uploaded subtitles
		WriteAutoSubs().               // Auto-generated captions
		SubLangs(SubtitleLanguage).    // English only
		SkipDownload().                // No video or audio payload
		SubFormat(SubtitleFormat).     // WebVTT
		SetWorkDir(dir).               // Files land in the scratch dir
		SetSeparateProcessGroup(true)  // Survive being detached from our process group
	if y.executable != "" {
		dl.SetExecutable(y.executable)
	}

	y.logger.WithFields(logrus.Fields{
		"url":        url,
		"dir":        dir,
		"extra_args": strings.Join(extraArgs, " "),
	}).Debug("Running yt-dlp")

	result, err := dl.Run(ctx, downloaderPositionalArgs(extraArgs, url)...)
	if err != nil {
		stderr := ""
		if result != nil {
			stderr = strings.TrimSpace(result.Stderr)
		}
		y.logger.WithError(err).WithField("stderr", stderr).Debug("yt-dlp failed")
		// go-ytdlp usually folds stderr into its own error already.
		if stderr != "" && !strings.Contains(err.Error(), stderr) {
			return fmt.Errorf("%w: %v\nOutput: %s", ErrDownloadFailed, err, stderr)
		}
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	return nil
}

// downloaderPositionalArgs appends the URL after any extra arguments
func downloaderPositionalArgs(extraArgs []string, url string) []string {
	args := make([]string, 0, len(extraArgs)+1)
	args = append(args, extraArgs...)
	return append(args, url)
}

// InstallYTDLP makes sure a yt-dlp binary is available, downloading one into
// the go-ytdlp cache if needed, and returns its path.
func InstallYTDLP(ctx context.Context) (string, error) {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("installing yt-dlp: %w", err)
	}
	return resolved.Executable, nil
}
