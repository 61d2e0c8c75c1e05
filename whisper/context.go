package whisper

/*
#include <whisper.h>
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
	"unsafe"
)

// Context owns a loaded whisper model. Create one with InitFromFile or
// InitFromBuffer and release it with Close.
//
// The native model memory is reference counted: the Context holds one
// reference and every State derived from it holds another. whisper_free runs
// when the last reference is released, so closing a Context before its
// States is safe, but the Context rejects new operations as soon as Close is
// called.
type Context struct {
	mu     sync.RWMutex
	ptr    *C.struct_whisper_context
	refs   int // one for the Context itself plus one per open State
	closed bool
}

// InitFromFile loads a ggml model from a file on disk.
func InitFromFile(path string) (*Context, error) {
	if strings.ContainsRune(path, 0) {
		return nil, fmt.Errorf("whisper: model path contains NUL byte: %w", ErrInvalidArgument)
	}
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	ptr := C.whisper_init_from_file_with_params_no_state(cPath, C.whisper_context_default_params())
	if ptr == nil {
		return nil, fmt.Errorf("whisper: load model %q: %w", path, ErrInitFailed)
	}
	return &Context{ptr: ptr, refs: 1}, nil
}

// InitFromBuffer loads a ggml model already resident in memory. The buffer
// is not retained after the call returns.
func InitFromBuffer(buf []byte) (*Context, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("whisper: empty model buffer: %w", ErrInitFailed)
	}
	ptr := C.whisper_init_from_buffer_with_params_no_state(
		unsafe.Pointer(&buf[0]), C.size_t(len(buf)), C.whisper_context_default_params())
	if ptr == nil {
		return nil, fmt.Errorf("whisper: load model from buffer (%d bytes): %w", len(buf), ErrInitFailed)
	}
	return &Context{ptr: ptr, refs: 1}, nil
}

// Close releases the Context's reference to the native model. It is
// idempotent and never fails; the error return exists to satisfy io.Closer.
// Operations on the Context return ErrContextClosed afterwards. The model
// memory itself is freed once every derived State has also been closed.
func (c *Context) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	c.release()
	return nil
}

// NewState allocates per-session working memory tied to this model. The
// State must be closed by the caller; it keeps the model alive until then.
func (c *Context) NewState() (*State, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, fmt.Errorf("whisper: new state: %w", ErrContextClosed)
	}
	c.refs++
	ptr := c.ptr
	c.mu.Unlock()

	st := C.whisper_init_state(ptr)
	if st == nil {
		c.release()
		return nil, fmt.Errorf("whisper: allocate state: %w", ErrInitFailed)
	}
	return &State{ptr: st, ctx: c}, nil
}

// Tokenize converts UTF-8 text into at most maxTokens token ids. The
// returned slice holds exactly the count the tokenizer reported; trailing
// buffer capacity is never exposed.
func (c *Context) Tokenize(text string, maxTokens int) ([]Token, error) {
	if strings.ContainsRune(text, 0) {
		return nil, fmt.Errorf("whisper: text contains NUL byte: %w", ErrInvalidArgument)
	}
	if maxTokens < 0 {
		return nil, fmt.Errorf("whisper: maxTokens %d: %w", maxTokens, ErrInvalidArgument)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, fmt.Errorf("whisper: tokenize: %w", ErrContextClosed)
	}

	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	buf := make([]C.whisper_token, maxTokens+1) // +1 keeps &buf[0] valid for maxTokens == 0
	ret := C.whisper_tokenize(c.ptr, cText, &buf[0], C.int(maxTokens))
	if ret < 0 {
		// The tokenizer returns the negated required count when the output
		// buffer is too small. Treat every negative value as overflow; the
		// sentinel convention is not a stable native contract.
		return nil, fmt.Errorf("whisper: tokenize needs %d tokens, maxTokens is %d: %w",
			-int(ret), maxTokens, ErrTokenizeOverflow)
	}

	tokens := make([]Token, int(ret))
	for i := range tokens {
		tokens[i] = Token(buf[i])
	}
	return tokens, nil
}

// TokenString returns the display form of a token. It fails with
// ErrInvalidUTF8 when the vocabulary entry is not valid UTF-8 on its own;
// TokenBytes never does.
func (c *Context) TokenString(t Token) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, err := c.tokenBytes(t)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("whisper: token %d is not valid UTF-8: %w", t, ErrInvalidUTF8)
	}
	return string(b), nil
}

// TokenBytes returns the raw vocabulary bytes for a token, copied out of
// native memory.
func (c *Context) TokenBytes(t Token) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokenBytes(t)
}

// tokenBytes requires c.mu to be held.
func (c *Context) tokenBytes(t Token) ([]byte, error) {
	if c.closed {
		return nil, fmt.Errorf("whisper: token %d: %w", t, ErrContextClosed)
	}
	if t < 0 || int(t) >= int(C.whisper_n_vocab(c.ptr)) {
		return nil, fmt.Errorf("whisper: token %d out of range: %w", t, ErrLookupFailed)
	}
	ret := C.whisper_token_to_str(c.ptr, C.whisper_token(t))
	if ret == nil {
		return nil, fmt.Errorf("whisper: token %d: %w", t, ErrLookupFailed)
	}
	return []byte(C.GoString(ret)), nil
}

// ModelTypeDescription returns the human-readable model variant name, such
// as "base.en". The result is copied out of native memory immediately.
func (c *Context) ModelTypeDescription() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return "", fmt.Errorf("whisper: model type: %w", ErrContextClosed)
	}
	ret := C.whisper_model_type_readable(c.ptr)
	if ret == nil {
		return "", fmt.Errorf("whisper: model type: %w", ErrLookupFailed)
	}
	return C.GoString(ret), nil
}

// PrintTimings writes the engine's performance counters to its diagnostic
// stream (stderr).
func (c *Context) PrintTimings() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.mustLive()
	C.whisper_print_timings(c.ptr)
}

// ResetTimings resets the engine's performance counters.
func (c *Context) ResetTimings() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.mustLive()
	C.whisper_reset_timings(c.ptr)
}

// mustLive requires c.mu to be held. Infallible operations treat a closed
// Context as a caller bug rather than a runtime error.
func (c *Context) mustLive() {
	if c.closed {
		panic("whisper: use of closed Context")
	}
}

// release drops one reference and frees the native model when the last
// holder lets go. whisper_free cannot fail for a valid handle.
func (c *Context) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs--
	if c.refs == 0 && c.ptr != nil {
		C.whisper_free(c.ptr)
		c.ptr = nil
	}
}

// modelPtr returns the native pointer for callers that hold their own
// reference (open States). The pointer stays valid for as long as that
// reference is held.
func (c *Context) modelPtr() *C.struct_whisper_context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ptr
}
