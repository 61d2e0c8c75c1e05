package whisper

import "errors"

// Errors returned by the binding layer. Call sites wrap these with
// fmt.Errorf("...: %w", ...) so callers can match them with errors.Is.
var (
	// ErrInvalidArgument reports a caller-supplied string containing an
	// embedded NUL byte. It is returned before any native call is made.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInitFailed reports that a native loading or allocation call
	// returned null: a malformed model file, an unreadable path, an
	// unsupported buffer, or the allocator running out of memory.
	ErrInitFailed = errors.New("initialization failed")

	// ErrTokenizeOverflow reports that the native tokenizer signalled
	// failure, typically because maxTokens was too small for the input.
	ErrTokenizeOverflow = errors.New("tokenizer overflow")

	// ErrLookupFailed reports that a pointer-returning native query came
	// back null, such as an unknown token id.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrInvalidUTF8 reports native bytes that were not valid UTF-8 where
	// text output was requested.
	ErrInvalidUTF8 = errors.New("invalid utf-8")

	// ErrProcessFailed reports a non-zero return from a native
	// transcription run (full pipeline, encode or decode step).
	ErrProcessFailed = errors.New("processing failed")

	// ErrContextClosed reports use of a Context after Close.
	ErrContextClosed = errors.New("context closed")

	// ErrStateClosed reports use of a State after Close.
	ErrStateClosed = errors.New("state closed")
)
