package internal

import (
	"regexp"
	"strings"
)

// vttHeaderLines is the number of leading lines dropped from every WebVTT
// document before cues are scanned: the WEBVTT signature, Kind, Language and
// the blank separator that yt-dlp writes.
//
// The skip is positional. Documents whose real header is shorter or longer
// will lose cue text or keep header text respectively.
const vttHeaderLines = 4

// vttSignature must appear somewhere on the first line.
const vttSignature = "WEBVTT"

// cueSkipMarkers drop a line outright when any of them is present.
var cueSkipMarkers = []string{
	"-->",       // timing line
	"align:",    // cue settings
	"position:", // cue settings
}

// markupRule removes every match of pattern from a cue line.
type markupRule struct {
	name    string
	pattern *regexp.Regexp
}

// markupRules is applied in order. Tags that match none of these are kept.
var markupRules = []markupRule{
	{name: "timestamp or span close", pattern: regexp.MustCompile(`<\d{2}:\d{2}:\d{2}\.\d{3}>|</c>`)},
	{name: "span open", pattern: regexp.MustCompile(`<c>`)},
}

// NormalizeVTT converts WebVTT subtitle text into plain transcript text.
// Timing lines, cue settings, blank lines and karaoke markup are removed and
// adjacent repeated lines are collapsed. Input that does not look like
// WebVTT yields an empty string.
func NormalizeVTT(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	lines := strings.Split(raw, "\n")
	if len(lines) < vttHeaderLines || !strings.Contains(lines[0], vttSignature) {
		return ""
	}

	cues := make([]string, 0, len(lines)-vttHeaderLines)
	for _, line := range lines[vttHeaderLines:] {
		if text, ok := cueText(line); ok {
			cues = append(cues, text)
		}
	}

	return strings.Join(collapseAdjacent(cues), "\n")
}

// cueText returns the cleaned text of a line, or false when the line carries
// no transcript content.
func cueText(line string) (string, bool) {
	for _, marker := range cueSkipMarkers {
		if strings.Contains(line, marker) {
			return "", false
		}
	}
	if strings.TrimSpace(line) == "" {
		return "", false
	}

	for _, rule := range markupRules {
		line = rule.pattern.ReplaceAllString(line, "")
	}

	line = strings.TrimSpace(line)
	return line, line != ""
}

// collapseAdjacent drops lines equal to the line kept just before them.
func collapseAdjacent(lines []string) []string {
	result := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 || line != lines[i-1] {
			result = append(result, line)
		}
	}
	return result
}
