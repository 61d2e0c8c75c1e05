package whisper

/*
#include <whisper.h>
*/
import "C"
import "runtime"

// SamplingStrategy selects the decoder used by a full run.
type SamplingStrategy int

const (
	SamplingGreedy SamplingStrategy = iota
	SamplingBeamSearch
)

// FullParams configures a full transcription run. Create it with
// NewFullParams and adjust it with the setters; the zero value is not
// usable.
type FullParams struct {
	p C.struct_whisper_full_params
}

// NewFullParams returns engine defaults for the given strategy with all
// native console printing disabled.
func NewFullParams(strategy SamplingStrategy) *FullParams {
	cs := C.enum_whisper_sampling_strategy(C.WHISPER_SAMPLING_GREEDY)
	if strategy == SamplingBeamSearch {
		cs = C.enum_whisper_sampling_strategy(C.WHISPER_SAMPLING_BEAM_SEARCH)
	}
	fp := &FullParams{p: C.whisper_full_default_params(cs)}
	fp.p.print_special = C.bool(false)
	fp.p.print_progress = C.bool(false)
	fp.p.print_realtime = C.bool(false)
	fp.p.print_timestamps = C.bool(false)
	fp.p.n_threads = C.int(runtime.NumCPU())
	return fp
}

// SetThreads sets the number of native compute threads.
func (fp *FullParams) SetThreads(n int) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	fp.p.n_threads = C.int(n)
}

// SetLanguage sets the decoding language by id (see LangID). Pass -1 to
// auto-detect. The language string handed to the engine is the static
// whisper_lang_str entry, so no C string lifetime leaves this call.
func (fp *FullParams) SetLanguage(id int) {
	if id < 0 {
		fp.p.language = nil
		return
	}
	fp.p.language = C.whisper_lang_str(C.int(id))
}

// SetTranslate enables translation of the transcript to English.
func (fp *FullParams) SetTranslate(v bool) {
	fp.p.translate = C.bool(v)
}

// SetNoContext disables reuse of the previous transcription as decoder
// prompt.
func (fp *FullParams) SetNoContext(v bool) {
	fp.p.no_context = C.bool(v)
}

// SetSingleSegment forces the whole run into one output segment.
func (fp *FullParams) SetSingleSegment(v bool) {
	fp.p.single_segment = C.bool(v)
}

// SetTokenTimestamps enables per-token timestamp estimation.
func (fp *FullParams) SetTokenTimestamps(v bool) {
	fp.p.token_timestamps = C.bool(v)
}

// SetSplitOnWord splits segments on word rather than token boundaries.
func (fp *FullParams) SetSplitOnWord(v bool) {
	fp.p.split_on_word = C.bool(v)
}

// SetMaxSegmentLength caps segment length in characters; 0 means no limit.
func (fp *FullParams) SetMaxSegmentLength(n int) {
	fp.p.max_len = C.int(n)
}

// SetMaxTokensPerSegment caps tokens per segment; 0 means no limit.
func (fp *FullParams) SetMaxTokensPerSegment(n int) {
	fp.p.max_tokens = C.int(n)
}

// SetAudioCtx overrides the encoder context size; 0 uses the full context.
func (fp *FullParams) SetAudioCtx(n int) {
	fp.p.audio_ctx = C.int(n)
}

// SetBeamSize sets the beam width for SamplingBeamSearch.
func (fp *FullParams) SetBeamSize(n int) {
	fp.p.beam_search.beam_size = C.int(n)
}

// Threads returns the configured native thread count.
func (fp *FullParams) Threads() int {
	return int(fp.p.n_threads)
}

// Language returns the configured language code, or "auto".
func (fp *FullParams) Language() string {
	if fp.p.language == nil {
		return "auto"
	}
	return C.GoString(fp.p.language)
}
