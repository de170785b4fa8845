package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ScratchDirPrefix names every per-call scratch directory
const ScratchDirPrefix = "youtube-"

// ErrMissingURL is returned when a call carries no video URL
var ErrMissingURL = errors.New("url is required")

// TranscriptService downloads subtitle files for a URL and turns them into
// plain-text transcripts. It holds no per-call state, so one service can
// serve concurrent calls.
type TranscriptService struct {
	downloader      SubtitleDownloader
	scratchRoot     string
	startupArgs     []string
	downloadTimeout time.Duration
	logger          *logrus.Logger
	readFile        func(name string) ([]byte, error)
}

// ServiceOption customizes TranscriptService creation
type ServiceOption func(*TranscriptService)

// WithScratchRoot sets the directory scratch dirs are created under.
// Empty means the platform temp dir.
func WithScratchRoot(dir string) ServiceOption {
	return func(s *TranscriptService) {
		s.scratchRoot = dir
	}
}

// WithStartupArgs sets downloader arguments applied to every call
func WithStartupArgs(args []string) ServiceOption {
	return func(s *TranscriptService) {
		s.startupArgs = append([]string(nil), args...)
	}
}

// WithDownloadTimeout bounds each downloader run. Zero disables the bound.
func WithDownloadTimeout(timeout time.Duration) ServiceOption {
	return func(s *TranscriptService) {
		s.downloadTimeout = timeout
	}
}

// WithLogger sets the service logger
func WithLogger(logger *logrus.Logger) ServiceOption {
	return func(s *TranscriptService) {
		s.logger = logger
	}
}

// NewTranscriptService creates a transcript service around a downloader
func NewTranscriptService(downloader SubtitleDownloader, options ...ServiceOption) *TranscriptService {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &TranscriptService{
		downloader: downloader,
		logger:     discard,
		readFile:   os.ReadFile,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// StartupArgs returns the downloader arguments applied to every call
func (s *TranscriptService) StartupArgs() []string {
	return append([]string(nil), s.startupArgs...)
}

// FetchTranscript downloads the subtitles for url into a fresh scratch
// directory and returns the normalized text of every file written there.
// extraArgs is split on whitespace and passed to the downloader after the
// startup arguments. The scratch directory is removed before returning,
// whatever the outcome.
func (s *TranscriptService) FetchTranscript(ctx context.Context, url, extraArgs string) (*Transcripts, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrMissingURL
	}

	log := s.logger.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"url":        url,
	})

	scratchDir, err := os.MkdirTemp(s.scratchRoot, ScratchDirPrefix)
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	log = log.WithField("dir", scratchDir)
	defer func() {
		if err := os.RemoveAll(scratchDir); err != nil {
			log.WithError(err).Warn("Failed to remove scratch directory")
		}
	}()

	if err := s.download(ctx, url, SplitArgs(extraArgs), scratchDir); err != nil {
		log.WithError(err).Info("Subtitle download failed")
		return nil, err
	}

	transcripts, err := s.readTranscripts(scratchDir)
	if err != nil {
		log.WithError(err).Error("Reading subtitle files failed")
		return nil, err
	}
	transcripts.URL = url

	log.WithField("files", len(transcripts.Files)).Info("Transcript fetched")
	return transcripts, nil
}

// download runs the downloader with startup args followed by call args
func (s *TranscriptService) download(ctx context.Context, url string, callArgs []string, dir string) error {
	if s.downloadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.downloadTimeout)
		defer cancel()
	}

	args := make([]string, 0, len(s.startupArgs)+len(callArgs))
	args = append(args, s.startupArgs...)
	args = append(args, callArgs...)

	if err := s.downloader.DownloadSubtitles(ctx, url, args, dir); err != nil {
		return fmt.Errorf("downloading subtitles: %w", err)
	}
	return nil
}

// readTranscripts normalizes every regular file in dir, in directory order
func (s *TranscriptService) readTranscripts(dir string) (*Transcripts, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scratch directory: %w", err)
	}

	transcripts := &Transcripts{Files: make([]SubtitleTranscript, 0, len(entries))}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		content, err := s.readFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading subtitle file %s: %w", entry.Name(), err)
		}

		transcripts.Files = append(transcripts.Files, SubtitleTranscript{
			Name: entry.Name(),
			Text: NormalizeVTT(string(content)),
		})
	}

	return transcripts, nil
}

// SplitArgs splits a downloader argument string on whitespace
func SplitArgs(args string) []string {
	return strings.Fields(args)
}
