package internal

import (
	"strings"
)

// transcriptSeparator sits between a file label and its transcript
const transcriptSeparator = "===================="

// SubtitleTranscript is the cleaned text of one downloaded subtitle file
type SubtitleTranscript struct {
	Name string
	Text string
}

// Transcripts holds every subtitle file produced for one video, in the
// order the scratch directory listed them
type Transcripts struct {
	URL   string
	Files []SubtitleTranscript
}

// IsEmpty reports whether no file yielded any transcript text
func (t *Transcripts) IsEmpty() bool {
	for _, f := range t.Files {
		if f.Text != "" {
			return false
		}
	}
	return true
}

// String labels each transcript with its file name and a separator line.
// Nothing is inserted between one transcript and the next label.
func (t *Transcripts) String() string {
	var sb strings.Builder
	for _, f := range t.Files {
		sb.WriteString(f.Name)
		sb.WriteString("\n")
		sb.WriteString(transcriptSeparator)
		sb.WriteString("\n")
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// Markdown renders the transcripts with one heading per file, for terminal display
func (t *Transcripts) Markdown() string {
	var sb strings.Builder
	for i, f := range t.Files {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("## ")
		sb.WriteString(f.Name)
		sb.WriteString("\n\n")
		sb.WriteString(f.Text)
	}
	return sb.String()
}
