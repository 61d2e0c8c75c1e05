// Package speech is a high-level transcription API on top of the low-level
// whisper bindings. It loads the model once and hands out reusable sessions
// that turn float32 audio samples into text.
package speech

import (
	"fmt"

	"github.com/ynot01/whisper-go/whisper"
)

// Transcriber converts audio samples to text.
type Transcriber interface {
	// Process transcribes mono 16kHz float32 audio samples to text.
	Process(samples []float32) (string, error)
	// Close releases backend resources.
	Close() error
}

// Options configures a transcription session.
type Options struct {
	// Language is a code or name understood by the engine ("en",
	// "german"). Empty or "auto" lets the model detect the language.
	Language string
	// Translate requests translation of the transcript to English.
	Translate bool
	// Threads is the native compute thread count; 0 uses all CPUs.
	Threads int
	// BeamSize selects beam search when > 1; otherwise greedy decoding.
	BeamSize int
	// TokenTimestamps enables per-token timestamp estimation.
	TokenTimestamps bool
}

// Model owns a loaded whisper model shared by its sessions. The caller must
// call Close when done; the model memory is released once every session is
// closed too.
type Model struct {
	ctx *whisper.Context
}

// NewModel loads a ggml model from the given path.
func NewModel(path string) (*Model, error) {
	ctx, err := whisper.InitFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("speech: load model %q: %w", path, err)
	}
	return &Model{ctx: ctx}, nil
}

// NewModelFromBuffer loads a ggml model already resident in memory.
func NewModelFromBuffer(buf []byte) (*Model, error) {
	ctx, err := whisper.InitFromBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("speech: load model from buffer: %w", err)
	}
	return &Model{ctx: ctx}, nil
}

// Close releases the model reference. Open sessions stay usable until they
// are closed themselves.
func (m *Model) Close() error {
	if m.ctx != nil {
		return m.ctx.Close()
	}
	return nil
}

// IsMultilingual reports whether the model supports languages other than
// English.
func (m *Model) IsMultilingual() bool {
	return m.ctx.IsMultilingual()
}

// Description returns the human-readable model variant, such as "base.en".
func (m *Model) Description() (string, error) {
	return m.ctx.ModelTypeDescription()
}

// Context exposes the underlying binding context for callers that need the
// low-level surface (tokenization, the parameter catalogue).
func (m *Model) Context() *whisper.Context {
	return m.ctx
}

// NewSession creates a transcription session with its own working memory.
func (m *Model) NewSession(opts Options) (*Session, error) {
	strategy := whisper.SamplingGreedy
	if opts.BeamSize > 1 {
		strategy = whisper.SamplingBeamSearch
	}
	params := whisper.NewFullParams(strategy)
	params.SetThreads(opts.Threads)
	params.SetTranslate(opts.Translate)
	params.SetTokenTimestamps(opts.TokenTimestamps)
	if opts.BeamSize > 1 {
		params.SetBeamSize(opts.BeamSize)
	}

	switch opts.Language {
	case "", "auto":
		params.SetLanguage(-1)
	default:
		id, err := whisper.LangID(opts.Language)
		if err != nil {
			return nil, fmt.Errorf("speech: language %q: %w", opts.Language, err)
		}
		if id != 0 && !m.ctx.IsMultilingual() {
			return nil, fmt.Errorf("speech: model is English-only, cannot decode %q", opts.Language)
		}
		params.SetLanguage(id)
	}

	state, err := m.ctx.NewState()
	if err != nil {
		return nil, fmt.Errorf("speech: new session: %w", err)
	}
	return &Session{state: state, params: params}, nil
}
