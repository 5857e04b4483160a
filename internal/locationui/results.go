package locationui

import "outage_portal_backend/internal/location"

// ResultsListController owns the active-index state of the prediction
// dropdown. It knows nothing about what a selection does downstream; the
// selection callback is its only outward edge.
type ResultsListController struct {
	items       []location.Prediction
	visible     bool
	activeIndex int
	onSelect    func(location.Prediction)
}

// NewResultsListController creates a hidden, empty list. onSelect is called
// exactly once per selection.
func NewResultsListController(onSelect func(location.Prediction)) *ResultsListController {
	return &ResultsListController{
		activeIndex: -1,
		onSelect:    onSelect,
	}
}

// SetItems replaces the list contents. The active index resets to the first
// item, or -1 when the list is empty.
func (c *ResultsListController) SetItems(items []location.Prediction) {
	c.items = items
	c.resetActive()
}

// SetVisible shows or hides the list. Either change resets the active index.
func (c *ResultsListController) SetVisible(visible bool) {
	c.visible = visible
	c.resetActive()
}

// Visible reports whether the list is shown.
func (c *ResultsListController) Visible() bool {
	return c.visible
}

// ActiveIndex returns the highlighted item's index, or -1.
func (c *ResultsListController) ActiveIndex() int {
	return c.activeIndex
}

// Down moves the highlight to the next item, wrapping past the end.
func (c *ResultsListController) Down() {
	if len(c.items) == 0 {
		return
	}
	c.activeIndex = (c.activeIndex + 1) % len(c.items)
}

// Up moves the highlight to the previous item, wrapping past the start.
func (c *ResultsListController) Up() {
	if len(c.items) == 0 {
		return
	}
	c.activeIndex = (c.activeIndex - 1 + len(c.items)) % len(c.items)
}

// Hover highlights an item without selecting it. Out-of-range indexes are
// ignored.
func (c *ResultsListController) Hover(i int) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.activeIndex = i
}

// Enter selects the active item, if any, firing the selection callback once.
func (c *ResultsListController) Enter() bool {
	if c.activeIndex < 0 || c.activeIndex >= len(c.items) {
		return false
	}
	selected := c.items[c.activeIndex]
	c.visible = false
	c.items = nil
	c.activeIndex = -1
	if c.onSelect != nil {
		c.onSelect(selected)
	}
	return true
}

// Escape clears the highlight and hides the list. The return value tells
// the caller to release input focus.
func (c *ResultsListController) Escape() bool {
	c.activeIndex = -1
	c.visible = false
	return true
}

func (c *ResultsListController) resetActive() {
	if len(c.items) == 0 {
		c.activeIndex = -1
		return
	}
	c.activeIndex = 0
}
