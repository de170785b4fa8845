package internal

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// UIManager handles terminal status output for the CLI commands
type UIManager interface {
	NewSpinner(description string) Spinner
}

// Spinner abstracts an indeterminate status indicator
type Spinner interface {
	Describe(description string)
	Finish()
}

// StandardUIManager writes status to stderr, keeping stdout for transcripts
type StandardUIManager struct {
	quiet       bool
	interactive bool
}

// NewUIManager creates a UI manager. Spinners are only drawn on a terminal.
func NewUIManager(quiet bool) UIManager {
	fd := os.Stderr.Fd()
	return &StandardUIManager{
		quiet:       quiet,
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

func (ui *StandardUIManager) NewSpinner(description string) Spinner {
	if ui.quiet || !ui.interactive {
		return silentSpinner{}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(0),
	)
	_ = bar.RenderBlank()
	return &visibleSpinner{bar: bar}
}

// visibleSpinner wraps the actual progress bar
type visibleSpinner struct {
	bar *progressbar.ProgressBar
}

func (v *visibleSpinner) Describe(description string) {
	v.bar.Describe(description)
}

func (v *visibleSpinner) Finish() {
	_ = v.bar.Finish()
}

type silentSpinner struct{}

func (silentSpinner) Describe(string) {}

func (silentSpinner) Finish() {}
