package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// writeFakeYTDLP installs a shell script standing in for yt-dlp. It records
// its arguments and working directory under recordDir, then runs body.
func writeFakeYTDLP(t *testing.T, recordDir, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake yt-dlp is a shell script")
	}

	script := fmt.Sprintf(`#!/bin/sh
printf '%%s\n' "$@" > %q
pwd > %q
%s
`, filepath.Join(recordDir, "args"), filepath.Join(recordDir, "pwd"), body)

	bin := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin
}

func readRecordedLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestYTDLPRunsSubtitleOnlyInScratchDir(t *testing.T) {
	recordDir := t.TempDir()
	bin := writeFakeYTDLP(t, recordDir,
		`printf 'WEBVTT\nKind: captions\nLanguage: en\n\n00:00:00.000 --> 00:00:01.000\nhi\n' > v.en.vtt`)

	scratchRoot := t.TempDir()
	service := NewTranscriptService(NewYTDLP(bin, discardLogger()),
		WithScratchRoot(scratchRoot),
		WithStartupArgs([]string{"--s1"}),
	)

	transcripts, err := service.FetchTranscript(context.Background(), "https://youtu.be/x", "--c1 --c2")
	require.NoError(t, err)
	assert.Equal(t, "v.en.vtt\n====================\nhi", transcripts.String())

	assert.Equal(t, []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-format", "vtt",
		"--sub-langs", "en",
		"--s1",
		"--c1", "--c2",
		"https://youtu.be/x",
	}, readRecordedLines(t, filepath.Join(recordDir, "args")))

	workDir := readRecordedLines(t, filepath.Join(recordDir, "pwd"))[0]
	resolvedRoot, err := filepath.EvalSymlinks(scratchRoot)
	require.NoError(t, err)
	resolvedParent, err := filepath.EvalSymlinks(filepath.Dir(workDir))
	require.NoError(t, err)
	assert.Equal(t, resolvedRoot, resolvedParent)
	assert.True(t, strings.HasPrefix(filepath.Base(workDir), ScratchDirPrefix), workDir)
	assert.NoDirExists(t, workDir)
}

func TestYTDLPFailureReportsStderrOnce(t *testing.T) {
	bin := writeFakeYTDLP(t, t.TempDir(), `echo "ERROR: no subs" >&2
exit 1`)

	dl := NewYTDLP(bin, discardLogger())
	err := dl.DownloadSubtitles(context.Background(), "https://youtu.be/x", nil, t.TempDir())

	require.ErrorIs(t, err, ErrDownloadFailed)
	assert.Equal(t, 1, strings.Count(err.Error(), "ERROR: no subs"), err.Error())
}

func TestYTDLPMissingExecutable(t *testing.T) {
	dl := NewYTDLP(filepath.Join(t.TempDir(), "yt-dlp-missing"), discardLogger())
	err := dl.DownloadSubtitles(context.Background(), "https://youtu.be/tAP1eZYEuKA", nil, t.TempDir())

	assert.ErrorIs(t, err, ErrDownloadFailed)
}

func TestDownloaderPositionalArgsPutsURLLast(t *testing.T) {
	extra := []string{"--proxy", "x"}
	args := downloaderPositionalArgs(extra, "https://youtu.be/tAP1eZYEuKA")

	assert.Equal(t, []string{"--proxy", "x", "https://youtu.be/tAP1eZYEuKA"}, args)
	assert.Equal(t, []string{"--proxy", "x"}, extra)
	assert.Equal(t, []string{"https://youtu.be/tAP1eZYEuKA"}, downloaderPositionalArgs(nil, "https://youtu.be/tAP1eZYEuKA"))
}
