package whisper

import (
	"errors"
	"testing"
)

func TestStateLifecycle(t *testing.T) {
	ctx := loadTestContext(t)

	st, err := ctx.NewState()
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if err := st.Full(nil, make([]float32, SampleRate)); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Full error = %v, want ErrStateClosed", err)
	}
	if _, err := st.Segment(0); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Segment error = %v, want ErrStateClosed", err)
	}
	if got := st.NumSegments(); got != 0 {
		t.Errorf("NumSegments = %d, want 0", got)
	}
}

func TestStateOutlivesContextClose(t *testing.T) {
	ctx, err := InitFromFile(testModelPath(t))
	if err != nil {
		t.Fatalf("InitFromFile: %v", err)
	}

	st, err := ctx.NewState()
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}

	// Closing the Context first must not pull the model out from under the
	// open session; the State's reference keeps it alive.
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := st.Full(nil, make([]float32, 2*SampleRate)); err != nil {
		t.Fatalf("Full after context close: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("state Close: %v", err)
	}
}

func TestMultipleStates(t *testing.T) {
	ctx := loadTestContext(t)

	var states []*State
	for i := 0; i < 3; i++ {
		st, err := ctx.NewState()
		if err != nil {
			t.Fatalf("NewState #%d: %v", i, err)
		}
		states = append(states, st)
	}
	for i, st := range states {
		if err := st.Close(); err != nil {
			t.Fatalf("Close #%d: %v", i, err)
		}
	}
}

func TestFullEmptySamples(t *testing.T) {
	ctx := loadTestContext(t)

	st, err := ctx.NewState()
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	defer func() { _ = st.Close() }()

	if err := st.Full(nil, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Full(nil samples) error = %v, want ErrInvalidArgument", err)
	}
}

func TestFullSilence(t *testing.T) {
	ctx := loadTestContext(t)

	st, err := ctx.NewState()
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	defer func() { _ = st.Close() }()

	if err := st.Full(nil, make([]float32, 2*SampleRate)); err != nil {
		t.Fatalf("Full on silence: %v", err)
	}

	// Silence may still decode to a few segments; every reported segment
	// must be retrievable with sane timestamps.
	n := st.NumSegments()
	for i := 0; i < n; i++ {
		seg, err := st.Segment(i)
		if err != nil {
			t.Fatalf("Segment(%d): %v", i, err)
		}
		if seg.End < seg.Start {
			t.Errorf("segment %d: end %v before start %v", i, seg.End, seg.Start)
		}
	}
	if _, err := st.Segment(n); !errors.Is(err, ErrLookupFailed) {
		t.Errorf("Segment(%d) error = %v, want ErrLookupFailed", n, err)
	}
}

func TestDecodeEmptyTokens(t *testing.T) {
	ctx := loadTestContext(t)

	st, err := ctx.NewState()
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	defer func() { _ = st.Close() }()

	if err := st.Decode(nil, 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Decode(nil tokens) error = %v, want ErrInvalidArgument", err)
	}
}
