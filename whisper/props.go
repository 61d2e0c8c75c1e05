package whisper

/*
#include <whisper.h>
*/
import "C"

// ModelParam identifies one entry in the model's read-only parameter
// catalogue: architecture dimensions, context window sizes and special token
// ids baked into the loaded model.
type ModelParam int

const (
	ParamNVocab ModelParam = iota
	ParamNTextCtx
	ParamNAudioCtx
	ParamModelNVocab
	ParamModelNAudioCtx
	ParamModelNAudioState
	ParamModelNAudioHead
	ParamModelNAudioLayer
	ParamModelNTextCtx
	ParamModelNTextState
	ParamModelNTextHead
	ParamModelNTextLayer
	ParamModelNMels
	ParamModelFType
	ParamModelType
	ParamTokenEOT
	ParamTokenSOT
	ParamTokenPrev
	ParamTokenSOLM
	ParamTokenNot
	ParamTokenBeg
)

// The catalogue is one table rather than a method per native accessor, so a
// new whisper.h accessor is a one-line addition here.
var paramTable = [...]struct {
	name string
	get  func(*C.struct_whisper_context) C.int
}{
	ParamNVocab:           {"n_vocab", func(p *C.struct_whisper_context) C.int { return C.whisper_n_vocab(p) }},
	ParamNTextCtx:         {"n_text_ctx", func(p *C.struct_whisper_context) C.int { return C.whisper_n_text_ctx(p) }},
	ParamNAudioCtx:        {"n_audio_ctx", func(p *C.struct_whisper_context) C.int { return C.whisper_n_audio_ctx(p) }},
	ParamModelNVocab:      {"model_n_vocab", func(p *C.struct_whisper_context) C.int { return C.whisper_model_n_vocab(p) }},
	ParamModelNAudioCtx:   {"model_n_audio_ctx", func(p *C.struct_whisper_context) C.int { return C.whisper_model_n_audio_ctx(p) }},
	ParamModelNAudioState: {"model_n_audio_state", func(p *C.struct_whisper_context) C.int { return C.whisper_model_n_audio_state(p) }},
	ParamModelNAudioHead:  {"model_n_audio_head", func(p *C.struct_whisper_context) C.int { return C.whisper_model_n_audio_head(p) }},
	ParamModelNAudioLayer: {"model_n_audio_layer", func(p *C.struct_whisper_context) C.int { return C.whisper_model_n_audio_layer(p) }},
	ParamModelNTextCtx:    {"model_n_text_ctx", func(p *C.struct_whisper_context) C.int { return C.whisper_model_n_text_ctx(p) }},
	ParamModelNTextState:  {"model_n_text_state", func(p *C.struct_whisper_context) C.int { return C.whisper_model_n_text_state(p) }},
	ParamModelNTextHead:   {"model_n_text_head", func(p *C.struct_whisper_context) C.int { return C.whisper_model_n_text_head(p) }},
	ParamModelNTextLayer:  {"model_n_text_layer", func(p *C.struct_whisper_context) C.int { return C.whisper_model_n_text_layer(p) }},
	ParamModelNMels:       {"model_n_mels", func(p *C.struct_whisper_context) C.int { return C.whisper_model_n_mels(p) }},
	ParamModelFType:       {"model_ftype", func(p *C.struct_whisper_context) C.int { return C.whisper_model_ftype(p) }},
	ParamModelType:        {"model_type", func(p *C.struct_whisper_context) C.int { return C.whisper_model_type(p) }},
	ParamTokenEOT:         {"token_eot", func(p *C.struct_whisper_context) C.int { return C.int(C.whisper_token_eot(p)) }},
	ParamTokenSOT:         {"token_sot", func(p *C.struct_whisper_context) C.int { return C.int(C.whisper_token_sot(p)) }},
	ParamTokenPrev:        {"token_prev", func(p *C.struct_whisper_context) C.int { return C.int(C.whisper_token_prev(p)) }},
	ParamTokenSOLM:        {"token_solm", func(p *C.struct_whisper_context) C.int { return C.int(C.whisper_token_solm(p)) }},
	ParamTokenNot:         {"token_not", func(p *C.struct_whisper_context) C.int { return C.int(C.whisper_token_not(p)) }},
	ParamTokenBeg:         {"token_beg", func(p *C.struct_whisper_context) C.int { return C.int(C.whisper_token_beg(p)) }},
}

// String returns the whisper.h accessor suffix for the parameter.
func (p ModelParam) String() string {
	if p < 0 || int(p) >= len(paramTable) {
		return "unknown"
	}
	return paramTable[p].name
}

// Param reads one catalogue entry. These reads are pure, deterministic for a
// loaded model, and never fail; calling Param on a closed Context or with an
// out-of-range ModelParam is a caller bug and panics.
func (c *Context) Param(p ModelParam) int {
	if p < 0 || int(p) >= len(paramTable) {
		panic("whisper: unknown ModelParam")
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.mustLive()
	return int(paramTable[p].get(c.ptr))
}

// VocabSize returns the vocabulary size of the loaded model.
func (c *Context) VocabSize() int {
	return c.Param(ParamNVocab)
}

// IsMultilingual reports whether the model supports multiple languages.
func (c *Context) IsMultilingual() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.mustLive()
	return C.whisper_is_multilingual(c.ptr) != 0
}

// LangToken returns the special token id for a language id, as resolved by
// LangID. Only meaningful for multilingual models.
func (c *Context) LangToken(langID int) Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.mustLive()
	return Token(C.whisper_token_lang(c.ptr, C.int(langID)))
}
