package whisper

/*
#include <whisper.h>
*/
import "C"
import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"
)

// State owns the working memory of one transcription session: decoder
// state, KV caches and intermediate buffers. Create it with
// Context.NewState and release it with Close.
//
// A State holds a reference to the Context it came from, so the model
// outlives every session derived from it. Closing a State never closes its
// Context. Operations on the same State are serialized by an internal
// mutex; it is still one logical session and should be driven from one
// goroutine.
type State struct {
	mu  sync.Mutex
	ptr *C.struct_whisper_state
	ctx *Context
}

// Segment is one span of transcribed audio.
type Segment struct {
	Start  time.Duration
	End    time.Duration
	Text   string
	Tokens []TokenData
}

// TokenData is a decoded token with its probability.
type TokenData struct {
	ID Token
	P  float32
}

// Close frees the session memory exactly once and releases the State's
// reference to its Context. It is idempotent and never fails.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ptr == nil {
		return nil
	}
	C.whisper_free_state(s.ptr)
	s.ptr = nil
	s.ctx.release()
	s.ctx = nil
	return nil
}

// Full runs the complete transcription pipeline on mono float32 samples at
// SampleRate. A nil params uses greedy defaults. Segments are available
// through NumSegments and Segment afterwards.
func (s *State) Full(params *FullParams, samples []float32) error {
	if len(samples) == 0 {
		return fmt.Errorf("whisper: full run on empty samples: %w", ErrInvalidArgument)
	}
	if params == nil {
		params = NewFullParams(SamplingGreedy)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ptr == nil {
		return fmt.Errorf("whisper: full run: %w", ErrStateClosed)
	}
	ret := C.whisper_full_with_state(s.ctx.modelPtr(), s.ptr, params.p,
		(*C.float)(unsafe.Pointer(&samples[0])), C.int(len(samples)))
	if ret != 0 {
		return fmt.Errorf("whisper: full run returned %d: %w", int(ret), ErrProcessFailed)
	}
	return nil
}

// Encode runs the audio encoder on the mel data already loaded into this
// session, starting at the given mel offset.
func (s *State) Encode(offset, threads int) error {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ptr == nil {
		return fmt.Errorf("whisper: encode: %w", ErrStateClosed)
	}
	ret := C.whisper_encode_with_state(s.ctx.modelPtr(), s.ptr, C.int(offset), C.int(threads))
	if ret != 0 {
		return fmt.Errorf("whisper: encode returned %d: %w", int(ret), ErrProcessFailed)
	}
	return nil
}

// Decode runs one text decoder step over the given tokens with past tokens
// of history.
func (s *State) Decode(tokens []Token, past, threads int) error {
	if len(tokens) == 0 {
		return fmt.Errorf("whisper: decode without tokens: %w", ErrInvalidArgument)
	}
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	buf := make([]C.whisper_token, len(tokens))
	for i, t := range tokens {
		buf[i] = C.whisper_token(t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ptr == nil {
		return fmt.Errorf("whisper: decode: %w", ErrStateClosed)
	}
	ret := C.whisper_decode_with_state(s.ctx.modelPtr(), s.ptr, &buf[0],
		C.int(len(tokens)), C.int(past), C.int(threads))
	if ret != 0 {
		return fmt.Errorf("whisper: decode returned %d: %w", int(ret), ErrProcessFailed)
	}
	return nil
}

// NumSegments returns the number of segments produced by the last Full run,
// or 0 on a closed State.
func (s *State) NumSegments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ptr == nil {
		return 0
	}
	return int(C.whisper_full_n_segments_from_state(s.ptr))
}

// Segment returns segment i of the last Full run. Text and token data are
// copied out of native memory and stay valid after the next run.
func (s *State) Segment(i int) (Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ptr == nil {
		return Segment{}, fmt.Errorf("whisper: segment %d: %w", i, ErrStateClosed)
	}
	n := int(C.whisper_full_n_segments_from_state(s.ptr))
	if i < 0 || i >= n {
		return Segment{}, fmt.Errorf("whisper: segment %d of %d: %w", i, n, ErrLookupFailed)
	}
	text := C.whisper_full_get_segment_text_from_state(s.ptr, C.int(i))
	if text == nil {
		return Segment{}, fmt.Errorf("whisper: segment %d text: %w", i, ErrLookupFailed)
	}
	seg := Segment{
		// Native segment timestamps are in centiseconds.
		Start: time.Duration(C.whisper_full_get_segment_t0_from_state(s.ptr, C.int(i))) * 10 * time.Millisecond,
		End:   time.Duration(C.whisper_full_get_segment_t1_from_state(s.ptr, C.int(i))) * 10 * time.Millisecond,
		Text:  C.GoString(text),
	}
	nTokens := int(C.whisper_full_n_tokens_from_state(s.ptr, C.int(i)))
	seg.Tokens = make([]TokenData, nTokens)
	for j := 0; j < nTokens; j++ {
		seg.Tokens[j] = TokenData{
			ID: Token(C.whisper_full_get_token_id_from_state(s.ptr, C.int(i), C.int(j))),
			P:  float32(C.whisper_full_get_token_p_from_state(s.ptr, C.int(i), C.int(j))),
		}
	}
	return seg, nil
}

// DetectedLang returns the language id chosen by the last Full run, or -1
// if none is available.
func (s *State) DetectedLang() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ptr == nil {
		return -1
	}
	return int(C.whisper_full_lang_id_from_state(s.ptr))
}
