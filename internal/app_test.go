package internal

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUI struct {
	descriptions []string
	finished     int
}

func (r *recordingUI) NewSpinner(description string) Spinner {
	r.descriptions = append(r.descriptions, description)
	return r
}

func (r *recordingUI) Describe(description string) {
	r.descriptions = append(r.descriptions, description)
}

func (r *recordingUI) Finish() {
	r.finished++
}

func newTestApp(t *testing.T, downloader SubtitleDownloader, ui UIManager) *App {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	config := &Config{
		Transport:  "stdio",
		ScratchDir: t.TempDir(),
		YTDLPArgs:  []string{"--no-warnings"},
	}
	return NewApp(config, logger, WithDownloader(downloader), WithUI(ui))
}

func TestAppGetTranscriptExpandsVideoID(t *testing.T) {
	downloader := &fakeDownloader{files: map[string]string{"tAP1eZYEuKA.en.vtt": duplicateCuesVTT}}
	ui := &recordingUI{}
	app := newTestApp(t, downloader, ui)

	transcripts, err := app.GetTranscript(context.Background(), "tAP1eZYEuKA", "--proxy x")
	require.NoError(t, err)

	assert.Equal(t, "tAP1eZYEuKA.en.vtt\n====================\nTest line\nDifferent line", transcripts.String())

	call := downloader.lastCall(t)
	assert.Equal(t, "https://www.youtube.com/watch?v=tAP1eZYEuKA", call.url)
	assert.Equal(t, []string{"--no-warnings", "--proxy", "x"}, call.extraArgs)

	require.NotEmpty(t, ui.descriptions)
	assert.Contains(t, ui.descriptions[0], "tAP1eZYEuKA")
	assert.Equal(t, 1, ui.finished)
}

func TestAppGetTranscriptWithoutSubtitleText(t *testing.T) {
	downloader := &fakeDownloader{files: map[string]string{"tAP1eZYEuKA.en.vtt": "WEBVTT\n\n\n\n"}}
	ui := &recordingUI{}
	app := newTestApp(t, downloader, ui)

	_, err := app.GetTranscript(context.Background(), "https://youtu.be/tAP1eZYEuKA", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTranscript)
	assert.Equal(t, 1, ui.finished)
}

func TestAppGetTranscriptDownloaderFailure(t *testing.T) {
	ui := &recordingUI{}
	app := newTestApp(t, &fakeDownloader{err: ErrDownloadFailed}, ui)

	_, err := app.GetTranscript(context.Background(), "https://youtu.be/tAP1eZYEuKA", "")
	assert.ErrorIs(t, err, ErrDownloadFailed)
	assert.Equal(t, 1, ui.finished)
}

func TestAppEnsureYTDLPSkippedByDefault(t *testing.T) {
	app := newTestApp(t, &fakeDownloader{}, &recordingUI{})

	assert.NoError(t, app.EnsureYTDLP(context.Background()))
}

func TestAppServiceCarriesStartupArgs(t *testing.T) {
	app := newTestApp(t, &fakeDownloader{}, &recordingUI{})

	assert.Equal(t, []string{"--no-warnings"}, app.Service().StartupArgs())
}
