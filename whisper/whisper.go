// Package whisper provides low-level cgo bindings to the whisper.cpp
// speech-recognition engine.
//
// The package wraps two native resources. A Context owns a loaded model
// (weights, vocabulary, configuration). A State owns the mutable working
// memory for one transcription session and is derived from a Context with
// NewState. States hold a reference to their Context, so the native model
// memory is released only after the Context and every State derived from it
// have been closed, in any order.
//
// A Context is safe to share across goroutines for read-only operations
// (Tokenize, TokenString, the model parameter catalogue): whisper.cpp
// guarantees those calls do not touch mutable state
// (https://github.com/ggerganov/whisper.cpp/issues/32#issuecomment-1272790388).
// A State is the working memory of a single session; using one State from
// multiple goroutines concurrently is undefined behavior in the native
// engine and must be prevented by the caller.
//
// All calls are synchronous and block until the native engine returns. The
// package performs no internal threading or cancellation.
package whisper

/*
#cgo LDFLAGS: -lwhisper -lm -lstdc++
#cgo darwin LDFLAGS: -framework Accelerate -framework Metal -framework Foundation
#include <whisper.h>
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"strings"
	"unsafe"
)

// Token is a single vocabulary entry identifier.
type Token int32

// SampleRate is the audio sample rate the engine expects, in Hz.
const SampleRate = C.WHISPER_SAMPLE_RATE

// LangID resolves a language name or code ("en", "german", ...) to the
// engine's numeric language id.
func LangID(name string) (int, error) {
	if strings.ContainsRune(name, 0) {
		return 0, fmt.Errorf("whisper: language %q: %w", name, ErrInvalidArgument)
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	id := int(C.whisper_lang_id(cName))
	if id < 0 {
		return 0, fmt.Errorf("whisper: unknown language %q: %w", name, ErrLookupFailed)
	}
	return id, nil
}

// LangString returns the short code for a language id, or an error for ids
// outside the engine's language table.
func LangString(id int) (string, error) {
	ret := C.whisper_lang_str(C.int(id))
	if ret == nil {
		return "", fmt.Errorf("whisper: language id %d: %w", id, ErrLookupFailed)
	}
	return C.GoString(ret), nil
}

// LangMax returns the largest valid language id.
func LangMax() int {
	return int(C.whisper_lang_max_id())
}
