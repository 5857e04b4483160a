package locationui

import (
	"testing"

	"outage_portal_backend/internal/location"
)

func threePredictions() []location.Prediction {
	return []location.Prediction{
		{PlaceID: "a", MainText: "Koramangala"},
		{PlaceID: "b", MainText: "HSR Layout"},
		{PlaceID: "c", MainText: "Indiranagar"},
	}
}

func TestResults_ActiveIndexResets(t *testing.T) {
	c := NewResultsListController(nil)

	if c.ActiveIndex() != -1 {
		t.Fatalf("empty list: expected -1, got %d", c.ActiveIndex())
	}

	c.SetItems(threePredictions())
	if c.ActiveIndex() != 0 {
		t.Fatalf("expected 0 after SetItems, got %d", c.ActiveIndex())
	}

	c.Down()
	c.SetVisible(true)
	if c.ActiveIndex() != 0 {
		t.Fatalf("visibility change must reset index, got %d", c.ActiveIndex())
	}

	c.SetItems(nil)
	if c.ActiveIndex() != -1 {
		t.Fatalf("expected -1 after clearing items, got %d", c.ActiveIndex())
	}
}

func TestResults_WrapAround(t *testing.T) {
	c := NewResultsListController(nil)
	c.SetItems(threePredictions())

	want := []int{1, 2, 0, 1}
	for i, w := range want {
		c.Down()
		if c.ActiveIndex() != w {
			t.Fatalf("down press %d: expected index %d, got %d", i+1, w, c.ActiveIndex())
		}
	}

	c.SetItems(threePredictions())
	c.Up()
	if c.ActiveIndex() != 2 {
		t.Fatalf("up from 0: expected 2, got %d", c.ActiveIndex())
	}
}

func TestResults_EnterFiresCallbackOnce(t *testing.T) {
	var selected []location.Prediction
	c := NewResultsListController(func(p location.Prediction) {
		selected = append(selected, p)
	})
	c.SetItems(threePredictions())
	c.SetVisible(true)
	c.Down()

	if !c.Enter() {
		t.Fatal("expected selection to fire")
	}
	if len(selected) != 1 || selected[0].PlaceID != "b" {
		t.Fatalf("unexpected selections %+v", selected)
	}

	// The list is consumed by the selection; Enter again is a no-op.
	if c.Enter() {
		t.Fatal("expected second Enter to do nothing")
	}
	if len(selected) != 1 {
		t.Fatalf("expected exactly one callback, got %d", len(selected))
	}
}

func TestResults_EnterOnEmptyList(t *testing.T) {
	c := NewResultsListController(func(location.Prediction) {
		t.Fatal("callback must not fire with no active item")
	})

	if c.Enter() {
		t.Fatal("expected no selection on empty list")
	}
}

func TestResults_EscapeClearsAndReleasesFocus(t *testing.T) {
	c := NewResultsListController(nil)
	c.SetItems(threePredictions())
	c.SetVisible(true)

	if !c.Escape() {
		t.Fatal("escape must report focus release")
	}
	if c.ActiveIndex() != -1 {
		t.Fatalf("expected -1 after escape, got %d", c.ActiveIndex())
	}
	if c.Visible() {
		t.Fatal("expected list hidden after escape")
	}
}

func TestResults_HoverSetsWithoutSelecting(t *testing.T) {
	c := NewResultsListController(func(location.Prediction) {
		t.Fatal("hover must not select")
	})
	c.SetItems(threePredictions())

	c.Hover(2)
	if c.ActiveIndex() != 2 {
		t.Fatalf("expected hover to set index 2, got %d", c.ActiveIndex())
	}

	c.Hover(7)
	if c.ActiveIndex() != 2 {
		t.Fatalf("out-of-range hover must be ignored, got %d", c.ActiveIndex())
	}
}
