package locationui

import (
	"strings"
	"unicode/utf8"

	"outage_portal_backend/internal/location"
)

// FieldState labels what an address input field currently holds.
type FieldState string

const (
	// StateEmpty means the field has no value.
	StateEmpty FieldState = "empty"
	// StateTyping means the field holds user-typed text.
	StateTyping FieldState = "typing"
	// StateSearching means a prediction search is in flight for the field.
	StateSearching FieldState = "searching"
	// StateAutofilled means the field holds a resolved selection.
	StateAutofilled FieldState = "autofilled"
)

// Affordance is the action icon the field should render.
type Affordance string

const (
	AffordanceNone    Affordance = "none"
	AffordanceSearch  Affordance = "search"
	AffordanceClear   Affordance = "clear"
	AffordanceSpinner Affordance = "spinner"
)

// TokenResetter is the slice of the session token manager the field
// controller needs. Exactly one reset happens per transition to empty.
type TokenResetter interface {
	Reset()
}

// LocationInputController is the per-field state machine behind an address
// input. It tracks state and the current search generation; it never talks
// to the network itself.
type LocationInputController struct {
	tokens    TokenResetter
	minLength int

	state      FieldState
	value      string
	generation uint64
	results    []location.Prediction
}

// NewLocationInputController creates a controller in the empty state.
// minLength is the threshold below which a search cannot be triggered.
func NewLocationInputController(tokens TokenResetter, minLength int) *LocationInputController {
	return &LocationInputController{
		tokens:    tokens,
		minLength: minLength,
		state:     StateEmpty,
	}
}

// State returns the current state label.
func (c *LocationInputController) State() FieldState {
	return c.state
}

// Value returns the current field text.
func (c *LocationInputController) Value() string {
	return c.value
}

// Results returns the predictions from the most recent applied search.
func (c *LocationInputController) Results() []location.Prediction {
	return c.results
}

// Input records a keystroke-level value change. A non-empty value moves the
// field to typing from any state; an empty value moves it to empty. The
// session token is reset exactly once when the field becomes empty.
func (c *LocationInputController) Input(value string) {
	c.value = value
	if strings.TrimSpace(value) == "" {
		c.clearToEmpty()
		return
	}

	// Editing invalidates any in-flight search or prior selection.
	c.state = StateTyping
	c.results = nil
}

// CanSearch reports whether the current value meets the search threshold.
func (c *LocationInputController) CanSearch() bool {
	return c.state == StateTyping && utf8.RuneCountInString(strings.TrimSpace(c.value)) >= c.minLength
}

// BeginSearch starts a search for the current value and returns its
// generation. The caller passes the generation back to ApplyResults so
// out-of-order responses can be discarded. Returns false when the value
// does not meet the threshold.
func (c *LocationInputController) BeginSearch() (uint64, bool) {
	if !c.CanSearch() {
		return 0, false
	}
	c.generation++
	c.state = StateSearching
	return c.generation, true
}

// ApplyResults installs the predictions for the given search generation.
// Results from a superseded generation, or arriving after the field left
// the searching state, are rejected.
func (c *LocationInputController) ApplyResults(gen uint64, preds []location.Prediction) bool {
	if c.state != StateSearching || gen != c.generation {
		return false
	}
	c.results = preds
	return true
}

// Autofill records that a prediction was resolved into the field.
func (c *LocationInputController) Autofill(value string) {
	c.value = value
	c.state = StateAutofilled
	c.results = nil
}

// Clear empties the field via the explicit clear affordance.
func (c *LocationInputController) Clear() {
	c.value = ""
	c.clearToEmpty()
}

// Affordance returns the icon the field should currently render.
func (c *LocationInputController) Affordance() Affordance {
	switch c.state {
	case StateTyping:
		return AffordanceSearch
	case StateSearching:
		return AffordanceSpinner
	case StateAutofilled:
		return AffordanceClear
	default:
		return AffordanceNone
	}
}

func (c *LocationInputController) clearToEmpty() {
	alreadyEmpty := c.state == StateEmpty
	c.state = StateEmpty
	c.results = nil
	// Invalidate in-flight searches so late responses cannot repopulate a
	// cleared field.
	c.generation++
	if !alreadyEmpty && c.tokens != nil {
		c.tokens.Reset()
	}
}
