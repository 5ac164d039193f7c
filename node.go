package wisteria

import (
	"fmt"
	"strconv"
	"strings"
)

// nodeIDCounter is a plain counter (no atomic — wisteria is single-threaded).
// Node identifiers keep the two-token "node-N" shape because pin full
// identifiers embed them and are split on '-' during lookup.
var nodeIDCounter int

func nextNodeID() string {
	nodeIDCounter++
	return fmt.Sprintf("node-%d", nodeIDCounter)
}

// bumpNodeIDCounter raises the counter past a restored identifier so that
// nodes added after a state load cannot collide with loaded ones.
func bumpNodeIDCounter(id string) {
	rest, ok := strings.CutPrefix(id, "node-")
	if !ok {
		return
	}
	if n, err := strconv.Atoi(rest); err == nil && n > nodeIDCounter {
		nodeIDCounter = n
	}
}

// Node is an instance of a catalog template: a titled box at a graph-space
// position owning an ordered pin collection and per-pin literal values.
type Node struct {
	// Identity
	ID  string
	Key string // catalog template key this node was instantiated from

	Title string
	X, Y  float64

	// Pins is the ordered pin collection. It is rebuilt wholesale during
	// template resynchronization; pin identity across a rebuild is preserved
	// only through full-identifier matching, never object identity.
	Pins []*Pin

	// Literals maps pin full identifiers to literal values for unconnected
	// input pins.
	Literals map[string]any

	// Singleton marks templates allowing at most one live instance.
	Singleton bool
	// CustomPins marks nodes whose pin set may grow beyond the template
	// (e.g. events with dynamic parameters).
	CustomPins bool

	pinCache map[string]*Pin
	view     NodeView
}

// newNode instantiates a node with the given identifier from a template,
// building its pin collection from specs (usually the template's pins, or
// the longer serialized set for custom-pin nodes during a state load).
func newNode(id, key string, tpl *Template, specs []PinSpec, x, y float64) *Node {
	n := &Node{
		ID:         id,
		Key:        key,
		Title:      tpl.Title,
		X:          x,
		Y:          y,
		Literals:   make(map[string]any),
		Singleton:  tpl.Singleton,
		CustomPins: tpl.CustomPins,
	}
	n.buildPins(specs)
	return n
}

// buildPins replaces the pin collection with fresh pins built from specs and
// seeds input-pin literals from the spec defaults.
func (n *Node) buildPins(specs []PinSpec) {
	n.Pins = make([]*Pin, 0, len(specs))
	for _, spec := range specs {
		p := newPin(n, spec)
		n.Pins = append(n.Pins, p)
		if p.Dir == PinIn && p.Default != nil {
			n.Literals[p.FullID] = p.Default
		}
	}
	n.RefreshPinCache()
}

// FindPinByID returns the pin with the given full identifier, or nil.
func (n *Node) FindPinByID(fullID string) *Pin {
	return n.pinCache[fullID]
}

// RefreshPinCache rebuilds the by-identifier pin index. Must be called after
// the pin collection is replaced.
func (n *Node) RefreshPinCache() {
	n.pinCache = make(map[string]*Pin, len(n.Pins))
	for _, p := range n.Pins {
		n.pinCache[p.FullID] = p
	}
}

// View returns the node's attached visual representation, or nil when the
// graph runs headless.
func (n *Node) View() NodeView {
	return n.view
}

// SyncWithTemplate rebuilds the pin collection from tpl, carrying over link
// lists, defaults, and literals for every new pin whose full identifier
// matches an old one, and repointing each referenced link through repoint.
// Pins present only in the old set are dropped; the caller must break their
// links first if a pin is truly removed rather than renamed.
func (n *Node) SyncWithTemplate(tpl *Template, repoint func(linkID string, old, new *Pin)) {
	n.Title = tpl.Title

	old := make(map[string]*Pin, len(n.Pins))
	for _, p := range n.Pins {
		old[p.FullID] = p
	}

	n.Pins = make([]*Pin, 0, len(tpl.Pins))
	for _, spec := range tpl.Pins {
		np := newPin(n, spec)
		if op, ok := old[np.FullID]; ok {
			np.LinkIDs = op.LinkIDs
			np.Default = op.Default
			for _, linkID := range np.LinkIDs {
				repoint(linkID, op, np)
			}
		} else if np.Dir == PinIn && np.Default != nil {
			n.Literals[np.FullID] = np.Default
		}
		n.Pins = append(n.Pins, np)
	}
	n.RefreshPinCache()
}
