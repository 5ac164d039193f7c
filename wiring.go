package wisteria

import (
	"sort"

	"github.com/google/uuid"
)

// Adapter nodes spawn centered on the connection midpoint; the offset pulls
// the node's top-left corner back so the midpoint lands on its body.
const (
	adapterOffsetX = 40
	adapterOffsetY = 15
)

// Link is a directed edge from an output pin to an input pin.
// Links live only in the Wiring arena; pins hold identifiers, never links.
type Link struct {
	ID    string
	Start *Pin // direction out
	End   *Pin // direction in
}

// Wiring is the sole owner of links: it arbitrates connection legality,
// inserts conversion adapters, and mediates wire visuals.
type Wiring struct {
	graph    *Graph
	links    map[string]*Link
	selected map[string]struct{}
}

func newWiring(g *Graph) *Wiring {
	return &Wiring{
		graph:    g,
		links:    make(map[string]*Link),
		selected: make(map[string]struct{}),
	}
}

// Link returns the link with the given identifier, or nil.
func (w *Wiring) Link(id string) *Link {
	return w.links[id]
}

// LinkCount returns the number of live links.
func (w *Wiring) LinkCount() int {
	return len(w.links)
}

// Links returns all live links sorted by identifier.
func (w *Wiring) Links() []*Link {
	out := make([]*Link, 0, len(w.links))
	for _, l := range w.links {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LinksByNodeID returns every link touching any pin of the given node.
func (w *Wiring) LinksByNodeID(nodeID string) []*Link {
	var out []*Link
	for _, l := range w.links {
		if l.Start.Node.ID == nodeID || l.End.Node.ID == nodeID {
			out = append(out, l)
		}
	}
	return out
}

// LinksByPinID returns every link with an endpoint at the given pin.
func (w *Wiring) LinksByPinID(pinID string) []*Link {
	var out []*Link
	for _, l := range w.links {
		if l.Start.FullID == pinID || l.End.FullID == pinID {
			out = append(out, l)
		}
	}
	return out
}

// --- Link selection ---

// ToggleLinkSelection flips a link's selection state. Selecting a link
// clears the node selection; the two selection domains are exclusive.
func (w *Wiring) ToggleLinkSelection(linkID string) {
	l := w.links[linkID]
	if l == nil {
		return
	}
	w.graph.ClearSelection()
	if _, ok := w.selected[linkID]; !ok {
		w.ClearLinkSelection()
		w.selected[linkID] = struct{}{}
	} else {
		delete(w.selected, linkID)
	}
	w.DrawWire(l)
}

// ClearLinkSelection deselects all links.
func (w *Wiring) ClearLinkSelection() {
	if len(w.selected) == 0 {
		return
	}
	for id := range w.selected {
		delete(w.selected, id)
		if l := w.links[id]; l != nil {
			w.DrawWire(l)
		}
	}
}

// SelectedLinks returns the selected link identifiers, sorted.
func (w *Wiring) SelectedLinks() []string {
	out := make([]string, 0, len(w.selected))
	for id := range w.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsLinkSelected reports whether the link is selected.
func (w *Wiring) IsLinkSelected(linkID string) bool {
	_, ok := w.selected[linkID]
	return ok
}

// --- Connection legality ---

// CanConnect reports whether two pins may be joined: different nodes,
// opposite directions, matching container kinds, and either identical value
// types, exec on both ends, or a registered conversion adapter for the
// (source, destination) type pair.
func (w *Wiring) CanConnect(a, b *Pin) bool {
	if a == nil || b == nil || a.Node == nil || b.Node == nil {
		return false
	}
	if a.Node.ID == b.Node.ID {
		return false
	}
	if a.Dir == b.Dir {
		return false
	}
	start, end := orient(a, b)
	if start.Container.normalized() != end.Container.normalized() {
		return false
	}
	if start.Type == end.Type {
		return true
	}
	_, ok := w.graph.catalog.ConversionKey(start.Type, end.Type)
	return ok
}

// orient returns the pins as (output, input) regardless of argument order.
func orient(a, b *Pin) (start, end *Pin) {
	if a.Dir == PinOut {
		return a, b
	}
	return b, a
}

// --- Connection lifecycle ---

// CreateConnection joins two pins, in either argument order. A
// single-capacity input that is already connected has its existing link
// broken first (replace-on-connect). When the value types differ and the
// catalog registers a conversion adapter, the adapter node is spawned at the
// connection midpoint and wired in with two links; if the spawned node does
// not expose the expected val_in/val_out ports it is rolled back and no
// connection is made. Every successful connection refreshes the affected
// node visuals, schedules a wire redraw for the next tick, and fires the
// autosave and dirty-mark notifications.
func (w *Wiring) CreateConnection(a, b *Pin) {
	if a == nil || b == nil {
		return
	}
	start, end := orient(a, b)
	if end.MaxLinks() == 1 && end.IsConnected() {
		w.BreakPinLinks(end.FullID)
	}

	isExec := start.Type == PinExec || end.Type == PinExec
	if !isExec && start.Type != end.Type {
		if key, ok := w.graph.catalog.ConversionKey(start.Type, end.Type); ok {
			p1 := w.pinPosition(start)
			p2 := w.pinPosition(end)
			midX := (p1.X + p2.X) / 2
			midY := (p1.Y + p2.Y) / 2
			conv := w.graph.AddNode(key, midX-adapterOffsetX, midY-adapterOffsetY)
			if conv != nil {
				convIn := conv.FindPinByID(conv.ID + "-val_in")
				convOut := conv.FindPinByID(conv.ID + "-val_out")
				if convIn != nil && convOut != nil {
					w.addLink(start, convIn)
					w.addLink(convOut, end)
					w.graph.surface.RefreshNode(start.Node)
					w.graph.surface.RefreshNode(conv)
					w.graph.surface.RefreshNode(end.Node)
					w.graph.ScheduleWireRedraw(start.Node.ID)
					w.graph.ScheduleWireRedraw(conv.ID)
					w.graph.ScheduleWireRedraw(end.Node.ID)
					w.graph.graphChanged()
					return
				}
				// Adapter template lacks the expected ports: roll it back.
				w.graph.removeNode(conv)
			}
		}
	}

	w.addLink(start, end)
	w.graph.surface.RefreshNode(end.Node)
	w.graph.surface.RefreshNode(start.Node)
	w.graph.ScheduleWireRedraw(end.Node.ID)
	w.graph.ScheduleWireRedraw(start.Node.ID)
	w.graph.graphChanged()
}

// addLink creates the link record and registers it on both endpoint pins.
func (w *Wiring) addLink(start, end *Pin) *Link {
	l := &Link{
		ID:    uuid.NewString(),
		Start: start,
		End:   end,
	}
	w.links[l.ID] = l
	start.addLinkID(l.ID)
	end.addLinkID(l.ID)
	return l
}

// BreakLinkByID removes a link from the arena and from both endpoint pins,
// removes its wire visual, and fires the canonical graph-changed side
// effects. Unknown identifiers are a no-op.
func (w *Wiring) BreakLinkByID(id string) {
	l := w.links[id]
	if l == nil {
		return
	}
	l.Start.removeLinkID(id)
	l.End.removeLinkID(id)
	delete(w.links, id)
	delete(w.selected, id)
	w.graph.surface.RemoveWire(id)
	w.graph.surface.RefreshNode(l.End.Node)
	w.graph.surface.RefreshNode(l.Start.Node)
	w.graph.ScheduleWireRedraw(l.End.Node.ID)
	w.graph.ScheduleWireRedraw(l.Start.Node.ID)
	w.graph.graphChanged()
}

// BreakPinLinks breaks every link touching the given pin.
func (w *Wiring) BreakPinLinks(pinID string) {
	for _, l := range w.LinksByPinID(pinID) {
		w.BreakLinkByID(l.ID)
	}
}

// --- Wire visuals ---

// DrawWire pushes a link's wire geometry to the surface. If either
// endpoint's node view has been detached without a prior delete, the link is
// treated as already broken and cleaned up here — a self-healing check
// against a desynchronized visual layer.
func (w *Wiring) DrawWire(l *Link) {
	sv := l.Start.Node.view
	ev := l.End.Node.view
	if sv == nil || ev == nil || !sv.Attached() || !ev.Attached() {
		if _, ok := w.links[l.ID]; ok {
			w.BreakLinkByID(l.ID)
		}
		return
	}
	from := w.pinPosition(l.Start)
	to := w.pinPosition(l.End)
	w.graph.surface.DrawWire(l, from, to, w.IsLinkSelected(l.ID))
}

// UpdateGhostWire updates the in-progress wire preview from the dragged pin
// to the pointer's world position. A nil pin hides the preview.
func (w *Wiring) UpdateGhostWire(pin *Pin, worldX, worldY float64) {
	if pin == nil {
		w.graph.surface.HideGhostWire()
		return
	}
	anchor := w.pinPosition(pin)
	cursor := Vec2{X: worldX, Y: worldY}
	// Wires always run out -> in, so the preview keeps the pin on the side
	// matching its direction.
	if pin.Dir == PinOut {
		w.graph.surface.DrawGhostWire(pin.Type, anchor, cursor)
	} else {
		w.graph.surface.DrawGhostWire(pin.Type, cursor, anchor)
	}
}

// pinPosition returns a pin's world-space anchor, falling back to the owning
// node's position when the view cannot place it.
func (w *Wiring) pinPosition(p *Pin) Vec2 {
	if v := p.Node.view; v != nil {
		if anchor, ok := v.PinAnchor(p); ok {
			return anchor
		}
	}
	return Vec2{X: p.Node.X, Y: p.Node.Y}
}
