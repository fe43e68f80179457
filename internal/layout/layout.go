// Package layout defines the navigation sections and the drawer state machine
// of the page chrome.
package layout

import (
	"encoding/json"
	"fmt"
)

// Section is an in-page anchor target and navigation entry.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var sections = []Section{
	{ID: "about", Label: "About Me"},
	{ID: "experience", Label: "Experience"},
	{ID: "education", Label: "Education"},
	{ID: "skills", Label: "Skills"},
}

// Sections returns the fixed navigation sections in page order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Viewport distinguishes the docked and overlay drawer modes.
type Viewport string

const (
	ViewportNarrow Viewport = "narrow"
	ViewportWide   Viewport = "wide"
)

// DrawerState is the visibility of the navigation drawer.
type DrawerState string

const (
	DrawerCollapsed DrawerState = "collapsed"
	DrawerExpanded  DrawerState = "expanded"
)

// DrawerEvent is a user action affecting the drawer.
type DrawerEvent string

const (
	EventToggle   DrawerEvent = "toggle"   // menu button
	EventClose    DrawerEvent = "close"    // close button or backdrop
	EventNavigate DrawerEvent = "navigate" // navigation entry selected
)

// Events lists every drawer event.
func Events() []DrawerEvent {
	return []DrawerEvent{EventToggle, EventClose, EventNavigate}
}

// narrowTransitions is the overlay mode table. The wide viewport has no table:
// the drawer is docked and always visible.
var narrowTransitions = map[DrawerState]map[DrawerEvent]DrawerState{
	DrawerCollapsed: {
		EventToggle:   DrawerExpanded,
		EventClose:    DrawerCollapsed,
		EventNavigate: DrawerCollapsed,
	},
	DrawerExpanded: {
		EventToggle:   DrawerCollapsed,
		EventClose:    DrawerCollapsed,
		EventNavigate: DrawerCollapsed,
	},
}

// Drawer tracks the drawer state for one viewport mode. The page script runs the
// same transitions client-side from TransitionsJSON; the rendered markup starts
// in the state of a new narrow Drawer.
type Drawer struct {
	viewport Viewport
	state    DrawerState
}

// NewDrawer starts collapsed on narrow viewports and expanded on wide ones.
func NewDrawer(viewport Viewport) *Drawer {
	d := &Drawer{viewport: viewport, state: DrawerCollapsed}
	if viewport == ViewportWide {
		d.state = DrawerExpanded
	}
	return d
}

// State returns the current state.
func (d *Drawer) State() DrawerState {
	return d.state
}

// Visible reports whether the navigation panel is shown.
func (d *Drawer) Visible() bool {
	return d.state == DrawerExpanded
}

// Viewport returns the drawer mode.
func (d *Drawer) Viewport() Viewport {
	return d.viewport
}

// Handle applies an event and returns the new state. Wide viewports ignore events.
func (d *Drawer) Handle(ev DrawerEvent) (DrawerState, error) {
	if d.viewport == ViewportWide {
		return d.state, nil
	}
	next, ok := narrowTransitions[d.state][ev]
	if !ok {
		return d.state, fmt.Errorf("unknown drawer event %q", ev)
	}
	d.state = next
	return next, nil
}

// Resize switches the viewport mode. Going wide docks the drawer; going narrow collapses it.
func (d *Drawer) Resize(viewport Viewport) {
	if viewport == d.viewport {
		return
	}
	d.viewport = viewport
	if viewport == ViewportWide {
		d.state = DrawerExpanded
	} else {
		d.state = DrawerCollapsed
	}
}

// TransitionsJSON serializes the narrow viewport table for the inline script.
func TransitionsJSON() (string, error) {
	data, err := json.Marshal(narrowTransitions)
	if err != nil {
		return "", fmt.Errorf("failed to encode drawer transitions: %w", err)
	}
	return string(data), nil
}
