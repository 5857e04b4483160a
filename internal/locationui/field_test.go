package locationui

import (
	"testing"

	"outage_portal_backend/internal/location"
)

type countingResetter struct{ resets int }

func (r *countingResetter) Reset() { r.resets++ }

func TestField_Transitions(t *testing.T) {
	c := NewLocationInputController(&countingResetter{}, 3)

	if c.State() != StateEmpty {
		t.Fatalf("expected empty, got %q", c.State())
	}

	c.Input("K")
	if c.State() != StateTyping {
		t.Fatalf("expected typing after keystroke, got %q", c.State())
	}

	c.Input("Koramangala")
	gen, ok := c.BeginSearch()
	if !ok || gen == 0 {
		t.Fatalf("expected search to start, got gen=%d ok=%v", gen, ok)
	}
	if c.State() != StateSearching {
		t.Fatalf("expected searching, got %q", c.State())
	}

	c.Autofill("Koramangala, Bengaluru")
	if c.State() != StateAutofilled {
		t.Fatalf("expected autofilled, got %q", c.State())
	}

	c.Clear()
	if c.State() != StateEmpty {
		t.Fatalf("expected empty after clear, got %q", c.State())
	}
}

func TestField_SearchBelowThresholdRejected(t *testing.T) {
	c := NewLocationInputController(&countingResetter{}, 5)

	c.Input("Kora")
	if _, ok := c.BeginSearch(); ok {
		t.Fatal("expected search below threshold to be rejected")
	}
	if c.State() != StateTyping {
		t.Fatalf("expected field to stay typing, got %q", c.State())
	}
}

func TestField_StaleResultsDiscarded(t *testing.T) {
	c := NewLocationInputController(&countingResetter{}, 3)

	c.Input("Kora")
	oldGen, _ := c.BeginSearch()

	// A new keystroke and search supersede the first one.
	c.Input("Koramangala")
	newGen, _ := c.BeginSearch()

	stale := []location.Prediction{{PlaceID: "old", MainText: "Kora"}}
	if c.ApplyResults(oldGen, stale) {
		t.Fatal("stale generation must be rejected")
	}

	fresh := []location.Prediction{{PlaceID: "new", MainText: "Koramangala"}}
	if !c.ApplyResults(newGen, fresh) {
		t.Fatal("current generation must be accepted")
	}
	if got := c.Results(); len(got) != 1 || got[0].PlaceID != "new" {
		t.Fatalf("unexpected results %+v", got)
	}
}

func TestField_ResultsAfterClearRejected(t *testing.T) {
	c := NewLocationInputController(&countingResetter{}, 3)

	c.Input("Koramangala")
	gen, _ := c.BeginSearch()
	c.Clear()

	if c.ApplyResults(gen, []location.Prediction{{PlaceID: "late"}}) {
		t.Fatal("results landing after a clear must be rejected")
	}
}

func TestField_TokenResetExactlyOncePerEmpty(t *testing.T) {
	tokens := &countingResetter{}
	c := NewLocationInputController(tokens, 3)

	c.Input("Koramangala")
	c.Clear()
	if tokens.resets != 1 {
		t.Fatalf("expected 1 reset after clear, got %d", tokens.resets)
	}

	// Clearing an already-empty field must not reset again.
	c.Clear()
	c.Input("")
	if tokens.resets != 1 {
		t.Fatalf("expected resets to stay at 1, got %d", tokens.resets)
	}

	// A fresh edit cleared by backspacing resets once more.
	c.Input("HSR")
	c.Input("")
	if tokens.resets != 2 {
		t.Fatalf("expected 2 resets, got %d", tokens.resets)
	}
}

func TestField_Affordances(t *testing.T) {
	c := NewLocationInputController(&countingResetter{}, 3)

	if c.Affordance() != AffordanceNone {
		t.Fatalf("empty field: got %q", c.Affordance())
	}

	c.Input("Koramangala")
	if c.Affordance() != AffordanceSearch {
		t.Fatalf("typing field: got %q", c.Affordance())
	}

	c.BeginSearch()
	if c.Affordance() != AffordanceSpinner {
		t.Fatalf("searching field: got %q", c.Affordance())
	}

	c.Autofill("Koramangala, Bengaluru")
	if c.Affordance() != AffordanceClear {
		t.Fatalf("autofilled field: got %q", c.Affordance())
	}
}
