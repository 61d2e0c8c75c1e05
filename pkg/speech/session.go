package speech

import (
	"fmt"
	"strings"

	"github.com/ynot01/whisper-go/whisper"
)

// Session is one transcription session over a shared model. It is not safe
// for concurrent use; run each session from a single goroutine.
type Session struct {
	state  *whisper.State
	params *whisper.FullParams
}

var _ Transcriber = (*Session)(nil)

// Process transcribes mono 16kHz float32 audio samples to text.
func (s *Session) Process(samples []float32) (string, error) {
	if err := s.state.Full(s.params, samples); err != nil {
		return "", fmt.Errorf("speech: process: %w", err)
	}

	var parts []string
	for i := 0; i < s.state.NumSegments(); i++ {
		seg, err := s.state.Segment(i)
		if err != nil {
			return "", fmt.Errorf("speech: segment %d: %w", i, err)
		}
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

// Segments returns the typed segments of the last Process call, including
// timestamps and token probabilities.
func (s *Session) Segments() ([]whisper.Segment, error) {
	n := s.state.NumSegments()
	segs := make([]whisper.Segment, 0, n)
	for i := 0; i < n; i++ {
		seg, err := s.state.Segment(i)
		if err != nil {
			return nil, fmt.Errorf("speech: segment %d: %w", i, err)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// DetectedLanguage returns the language code chosen by the last Process
// call, or "" when none was detected.
func (s *Session) DetectedLanguage() string {
	id := s.state.DetectedLang()
	if id < 0 {
		return ""
	}
	name, err := whisper.LangString(id)
	if err != nil {
		return ""
	}
	return name
}

// Close releases the session's working memory.
func (s *Session) Close() error {
	return s.state.Close()
}
