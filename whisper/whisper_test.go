package whisper

import (
	"errors"
	"testing"
)

// Language table lookups go straight to the native library and need no
// loaded model.

func TestLangID(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"en", 0},
		{"english", 0},
	}
	for _, tt := range tests {
		got, err := LangID(tt.name)
		if err != nil {
			t.Fatalf("LangID(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("LangID(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLangIDUnknown(t *testing.T) {
	if _, err := LangID("not-a-language"); !errors.Is(err, ErrLookupFailed) {
		t.Errorf("error = %v, want ErrLookupFailed", err)
	}
}

func TestLangIDNulByte(t *testing.T) {
	if _, err := LangID("en\x00"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestLangStringRoundTrip(t *testing.T) {
	max := LangMax()
	if max <= 0 {
		t.Fatalf("LangMax() = %d, want > 0", max)
	}
	for id := 0; id <= max; id++ {
		name, err := LangString(id)
		if err != nil {
			t.Fatalf("LangString(%d): %v", id, err)
		}
		back, err := LangID(name)
		if err != nil {
			t.Fatalf("LangID(%q): %v", name, err)
		}
		if back != id {
			t.Errorf("LangID(LangString(%d)) = %d", id, back)
		}
	}
}

func TestLangStringOutOfRange(t *testing.T) {
	if _, err := LangString(LangMax() + 1000); !errors.Is(err, ErrLookupFailed) {
		t.Errorf("error = %v, want ErrLookupFailed", err)
	}
}
