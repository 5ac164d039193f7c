package wisteria

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	// GridSize is the snap grid pitch in world units.
	GridSize = 10

	// duplicateOffset is the diagonal displacement applied to duplicated
	// nodes so copies never land exactly on their originals.
	duplicateOffset = 20
)

// Graph owns the node set, selection, the wiring arena, and the viewport,
// and routes every mutation's side effects to the injected collaborators.
// All collaborators default to no-ops so a Graph works headless.
type Graph struct {
	catalog     Catalog
	surface     Surface
	compiler    Compiler
	persistence Persistence
	details     Details
	menu        ActionMenu
	log         *slog.Logger

	wiring *Wiring
	view   *View

	docID    string
	nodes    map[string]*Node
	order    []string
	selected map[string]struct{}

	state       interaction
	redrawQueue []string
}

// NewGraph creates an empty graph backed by the given template catalog.
func NewGraph(catalog Catalog) *Graph {
	g := &Graph{
		catalog:     catalog,
		surface:     nopSurface{},
		compiler:    nopCompiler{},
		persistence: nopPersistence{},
		details:     nopDetails{},
		menu:        nopMenu{},
		log:         slog.Default(),
		docID:       uuid.NewString(),
		nodes:       make(map[string]*Node),
		selected:    make(map[string]struct{}),
		view:        NewView(Rect{Width: 1280, Height: 720}),
	}
	g.wiring = newWiring(g)
	return g
}

// --- Collaborator injection ---

func (g *Graph) SetSurface(s Surface) {
	if s == nil {
		s = nopSurface{}
	}
	g.surface = s
}

func (g *Graph) SetCompiler(c Compiler) {
	if c == nil {
		c = nopCompiler{}
	}
	g.compiler = c
}

func (g *Graph) SetPersistence(p Persistence) {
	if p == nil {
		p = nopPersistence{}
	}
	g.persistence = p
}

func (g *Graph) SetDetails(d Details) {
	if d == nil {
		d = nopDetails{}
	}
	g.details = d
}

func (g *Graph) SetActionMenu(m ActionMenu) {
	if m == nil {
		m = nopMenu{}
	}
	g.menu = m
}

func (g *Graph) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	g.log = l
}

// SetViewport resizes the view's screen rectangle.
func (g *Graph) SetViewport(r Rect) {
	g.view.Viewport = r
}

// --- Accessors ---

// Wiring returns the graph's link controller.
func (g *Graph) Wiring() *Wiring {
	return g.wiring
}

// View returns the graph's pan/zoom viewport.
func (g *Graph) View() *View {
	return g.view
}

// DocID returns the document identifier carried through serialization.
func (g *Graph) DocID() string {
	return g.docID
}

// Node returns the node with the given identifier, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Nodes returns the live nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		if n := g.nodes[id]; n != nil {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// SelectedNodes returns the selected node identifiers, sorted.
func (g *Graph) SelectedNodes() []string {
	out := make([]string, 0, len(g.selected))
	for id := range g.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsSelected reports whether the node is selected.
func (g *Graph) IsSelected(nodeID string) bool {
	_, ok := g.selected[nodeID]
	return ok
}

// FindPinByID resolves a full pin identifier of the form
// "node-<n>-<localID>" to the live pin, or nil.
func (g *Graph) FindPinByID(pinID string) *Pin {
	parts := strings.SplitN(pinID, "-", 3)
	if len(parts) < 3 {
		return nil
	}
	n := g.nodes[parts[0]+"-"+parts[1]]
	if n == nil {
		return nil
	}
	return n.FindPinByID(pinID)
}

// CanConnect reports whether two pins may be joined.
func (g *Graph) CanConnect(a, b *Pin) bool {
	return g.wiring.CanConnect(a, b)
}

// --- Node lifecycle ---

// AddNode instantiates a template at the given world position and attaches
// its view. Unknown template keys return nil. Singleton templates that
// already have an instance select and center that instance instead of
// creating a second one.
func (g *Graph) AddNode(key string, x, y float64) *Node {
	tpl, ok := g.catalog.Get(key)
	if !ok {
		g.log.Warn("cannot add node: unknown template key", "key", key)
		return nil
	}
	if tpl.Singleton {
		for _, id := range g.order {
			n := g.nodes[id]
			if n != nil && n.Key == key {
				g.log.Warn("singleton template already placed", "key", key, "node", n.ID)
				g.SelectNode(n.ID, false, SelectNew)
				g.view.CenterOn(n, 0.4)
				return nil
			}
		}
	}

	n := newNode(nextNodeID(), key, tpl, tpl.Pins, x, y)
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	n.view = g.surface.AttachNode(n)
	g.compiler.MarkDirty()
	return n
}

// removeNode detaches and forgets a node without touching its links.
// Callers must break links first.
func (g *Graph) removeNode(n *Node) {
	g.surface.DetachNode(n)
	delete(g.nodes, n.ID)
	for i, id := range g.order {
		if id == n.ID {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	delete(g.selected, n.ID)
}

// DeleteSelectedNodes removes every selected node along with all links
// touching their pins, then clears the selection and details panel.
func (g *Graph) DeleteSelectedNodes() {
	if len(g.selected) == 0 {
		return
	}
	ids := g.SelectedNodes()
	for _, id := range ids {
		n := g.nodes[id]
		if n == nil {
			continue
		}
		for _, p := range n.Pins {
			g.wiring.BreakPinLinks(p.FullID)
		}
		g.surface.DetachNode(n)
		delete(g.nodes, id)
	}
	live := g.order[:0]
	for _, id := range g.order {
		if _, ok := g.nodes[id]; ok {
			live = append(live, id)
		}
	}
	g.order = live
	g.selected = make(map[string]struct{})
	g.details.Clear()
	g.graphChanged()
}

// DuplicateSelectedNodes copies every selected node with a small positional
// offset, re-creating the links whose both endpoints lie inside the
// selection, then moves the selection to the copies. With no nodes selected
// it instead deletes the selected links.
func (g *Graph) DuplicateSelectedNodes() {
	if len(g.selected) == 0 {
		g.DeleteSelectedLinks()
		return
	}
	ids := g.SelectedNodes()
	inSelection := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		inSelection[id] = struct{}{}
	}

	pinMap := make(map[string]*Pin)
	var copies []*Node
	for _, id := range ids {
		src := g.nodes[id]
		if src == nil {
			continue
		}
		dup := g.AddNode(src.Key, src.X+duplicateOffset, src.Y+duplicateOffset)
		if dup == nil {
			continue
		}
		for i, p := range src.Pins {
			if i >= len(dup.Pins) {
				break
			}
			pinMap[p.FullID] = dup.Pins[i]
			if v, ok := src.Literals[p.FullID]; ok {
				dup.Literals[dup.Pins[i].FullID] = v
			}
		}
		copies = append(copies, dup)
	}

	for _, l := range g.wiring.Links() {
		if _, okS := inSelection[l.Start.Node.ID]; !okS {
			continue
		}
		if _, okE := inSelection[l.End.Node.ID]; !okE {
			continue
		}
		ns, ne := pinMap[l.Start.FullID], pinMap[l.End.FullID]
		if ns != nil && ne != nil {
			g.wiring.CreateConnection(ns, ne)
		}
	}

	g.wiring.ClearLinkSelection()
	g.ClearSelection()
	for _, dup := range copies {
		g.SelectNode(dup.ID, true, SelectAdd)
	}
	g.persistence.AutoSave()
}

// DeleteSelectedLinks breaks every selected link.
func (g *Graph) DeleteSelectedLinks() {
	for _, id := range g.wiring.SelectedLinks() {
		g.wiring.BreakLinkByID(id)
	}
	g.wiring.ClearLinkSelection()
	g.persistence.AutoSave()
}

// --- Selection ---

// SelectNode updates the selection per the given mode. Unless
// addToSelection is set the current selection is replaced. The details
// panel shows the node when it becomes the sole selection and clears
// otherwise.
func (g *Graph) SelectNode(nodeID string, addToSelection bool, mode SelectMode) {
	if _, ok := g.nodes[nodeID]; !ok {
		return
	}
	if !addToSelection {
		g.selected = make(map[string]struct{})
	}
	switch mode {
	case SelectRemove:
		delete(g.selected, nodeID)
	case SelectToggle:
		if _, ok := g.selected[nodeID]; ok {
			delete(g.selected, nodeID)
		} else {
			g.selected[nodeID] = struct{}{}
		}
	default:
		g.selected[nodeID] = struct{}{}
	}
	g.notifySelection()
}

// ClearSelection deselects all nodes.
func (g *Graph) ClearSelection() {
	if len(g.selected) == 0 {
		return
	}
	g.selected = make(map[string]struct{})
	g.details.Clear()
}

// SelectNodesInRect applies the selection mode to every node whose view
// center falls inside the world-space rectangle.
func (g *Graph) SelectNodesInRect(r Rect, mode SelectMode) {
	for _, id := range g.order {
		n := g.nodes[id]
		if n == nil {
			continue
		}
		center := Vec2{X: n.X, Y: n.Y}
		if n.view != nil && n.view.Attached() {
			center = n.view.Bounds().Center()
		}
		if r.Contains(center.X, center.Y) {
			g.SelectNode(id, true, mode)
		}
	}
}

func (g *Graph) notifySelection() {
	if len(g.selected) == 1 {
		for id := range g.selected {
			if n := g.nodes[id]; n != nil {
				g.details.ShowNode(n)
				return
			}
		}
	}
	g.details.Clear()
}

// --- Template resync ---

// UpdateVariableNodes renames every getter and setter of a variable and
// resyncs them with their renamed templates, preserving links and literals.
func (g *Graph) UpdateVariableNodes(oldName, newName string) {
	oldGet, newGet := "Get_"+oldName, "Get_"+newName
	oldSet, newSet := "Set_"+oldName, "Set_"+newName
	for _, id := range g.order {
		n := g.nodes[id]
		if n == nil {
			continue
		}
		switch n.Key {
		case oldGet:
			n.Key = newGet
		case oldSet:
			n.Key = newSet
		default:
			continue
		}
		g.SyncNodeWithTemplate(n)
	}
}

// SyncNodeWithTemplate rebuilds a node's pins from its current template,
// carrying over the links and defaults of pins whose identifiers survive
// and repointing live link endpoints at the rebuilt pins.
func (g *Graph) SyncNodeWithTemplate(n *Node) {
	tpl, ok := g.catalog.Get(n.Key)
	if !ok {
		g.log.Warn("cannot sync node: unknown template key", "key", n.Key, "node", n.ID)
		return
	}
	n.SyncWithTemplate(tpl, func(linkID string, old, new *Pin) {
		l := g.wiring.Link(linkID)
		if l == nil {
			return
		}
		if l.Start == old {
			l.Start = new
		}
		if l.End == old {
			l.End = new
		}
	})
	g.surface.RefreshNode(n)
	g.RedrawNodeWires(n.ID)
	g.graphChanged()
}

// PromotePinToVariable registers a variable matching the pin's type and
// spawns its getter and setter next to the pin's node, wiring the new
// variable to the pin. Requires a catalog that supports variables.
func (g *Graph) PromotePinToVariable(p *Pin, name string) {
	vc, ok := g.catalog.(VariableCatalog)
	if !ok || p == nil || p.Node == nil {
		return
	}
	vc.RegisterVariable(name, p.Type, p.Container, p.Literal())

	x, y := p.Node.X-200, p.Node.Y+50
	if p.Dir == PinIn {
		getter := g.AddNode("Get_"+name, x, y)
		if getter != nil {
			if out := getter.FindPinByID(getter.ID + "-val_out"); out != nil {
				g.wiring.CreateConnection(out, p)
			}
		}
	} else {
		setter := g.AddNode("Set_"+name, x, y)
		if setter != nil {
			if in := setter.FindPinByID(setter.ID + "-val_in"); in != nil {
				g.wiring.CreateConnection(p, in)
			}
		}
	}
	g.persistence.AutoSave()
}

// --- Geometry ---

// SnapSelectedToGrid rounds every selected node's position to the grid and
// redraws its wires. Side effects are the caller's responsibility.
func (g *Graph) SnapSelectedToGrid() {
	for _, id := range g.SelectedNodes() {
		n := g.nodes[id]
		if n == nil {
			continue
		}
		n.X = math.Round(n.X/GridSize) * GridSize
		n.Y = math.Round(n.Y/GridSize) * GridSize
		g.surface.RefreshNode(n)
		g.RedrawNodeWires(id)
	}
}

// --- Wire redraw ---

// ScheduleWireRedraw queues a node's wires for redraw on the next Update.
func (g *Graph) ScheduleWireRedraw(nodeID string) {
	for _, id := range g.redrawQueue {
		if id == nodeID {
			return
		}
	}
	g.redrawQueue = append(g.redrawQueue, nodeID)
}

// RedrawNodeWires immediately redraws every wire touching the node.
func (g *Graph) RedrawNodeWires(nodeID string) {
	for _, l := range g.wiring.LinksByNodeID(nodeID) {
		g.wiring.DrawWire(l)
	}
}

// DrawAllWires redraws every live wire.
func (g *Graph) DrawAllWires() {
	for _, l := range g.wiring.Links() {
		g.wiring.DrawWire(l)
	}
}

// Update advances view animations and flushes the pending wire redraws.
func (g *Graph) Update(dt float32) {
	g.view.Update(dt)
	if len(g.redrawQueue) == 0 {
		return
	}
	queue := g.redrawQueue
	g.redrawQueue = nil
	for _, id := range queue {
		if _, ok := g.nodes[id]; ok {
			g.RedrawNodeWires(id)
		}
	}
}

// graphChanged fires the canonical mutation side effects.
func (g *Graph) graphChanged() {
	g.persistence.AutoSave()
	g.compiler.MarkDirty()
}
