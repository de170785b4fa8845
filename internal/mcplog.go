package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. Logs go to stderr unless
// config.LogFile is set, in which case they are appended to config.LogPath.
// Stdout is never used: the stdio transport owns it.
// The returned closer releases the log file, if one was opened.
func NewLogger(config *Config) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
	})

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}
	if config.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if !config.LogFile {
		return logger, io.NopCloser(nil), nil
	}

	if err := EnsureDirs(filepath.Dir(config.LogPath)); err != nil {
		return nil, nil, err
	}

	logFile, err := os.OpenFile(config.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger.SetOutput(logFile)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
	})

	return logger, logFile, nil
}
