package wisteria

// NodeView is the visual representation of a node on a Surface.
// The graph consults it for hit testing and wire-anchor geometry; it never
// draws through it.
type NodeView interface {
	// Attached reports whether the visual element is still live on the
	// surface. A detached view on a linked node marks the link as broken;
	// the wiring controller cleans it up lazily on the next draw.
	Attached() bool
	// Bounds returns the node's world-space rectangle.
	Bounds() Rect
	// PinAnchor returns the world-space anchor point of a pin, if the view
	// can place it.
	PinAnchor(p *Pin) (Vec2, bool)
}

// Surface is the external rendering collaborator. The graph requests node
// and wire visuals through it and otherwise stays presentation-free, so a
// graph constructed without a surface runs headless.
type Surface interface {
	// AttachNode creates the visual representation for a node.
	AttachNode(n *Node) NodeView
	// RefreshNode re-renders a node's visual in place, preserving identity.
	RefreshNode(n *Node)
	// DetachNode removes a node's visual representation.
	DetachNode(n *Node)

	// DrawWire renders (or updates) the wire for a link between two
	// world-space anchor points.
	DrawWire(l *Link, from, to Vec2, selected bool)
	// RemoveWire removes the wire visual for a link identifier.
	RemoveWire(linkID string)

	// DrawGhostWire renders the in-progress wire preview during a wiring
	// drag, tinted for the dragged pin's type.
	DrawGhostWire(t PinType, from, to Vec2)
	// HideGhostWire hides the preview.
	HideGhostWire()

	// SetMarquee shows or hides the rubber-band selection rectangle,
	// in screen space.
	SetMarquee(r Rect, visible bool)
}

// Compiler consumes the dirty mark: the graph's compiled form is stale and
// must be recomputed. Fired on every graph-shape-changing mutation.
type Compiler interface {
	MarkDirty()
}

// Persistence consumes autosave requests, fired alongside the dirty mark on
// the same mutation set. It is expected to serialize the full graph state
// independently (see Graph.Serialize).
type Persistence interface {
	AutoSave()
}

// Details is the inspection collaborator: notified when exactly one node is
// selected, cleared when zero or several are.
type Details interface {
	ShowNode(n *Node)
	Clear()
}

// ActionMenu is the deferred-creation collaborator: shown when a wiring drag
// is released over empty canvas (seeded with the dangling pin) or on a
// right-click (from == nil). Coordinates are screen-space.
type ActionMenu interface {
	Show(x, y float64, from *Pin)
}

// --- No-op defaults ---
//
// A graph constructed without collaborators uses these, so every operation
// is callable headless.

type nopSurface struct{}

type nopNodeView struct {
	node *Node
}

func (v nopNodeView) Attached() bool                { return true }
func (v nopNodeView) Bounds() Rect                  { return Rect{X: v.node.X, Y: v.node.Y} }
func (v nopNodeView) PinAnchor(p *Pin) (Vec2, bool) { return Vec2{}, false }

func (nopSurface) AttachNode(n *Node) NodeView              { return nopNodeView{node: n} }
func (nopSurface) RefreshNode(n *Node)                      {}
func (nopSurface) DetachNode(n *Node)                       {}
func (nopSurface) DrawWire(l *Link, _, _ Vec2, _ bool)      {}
func (nopSurface) RemoveWire(linkID string)                 {}
func (nopSurface) DrawGhostWire(t PinType, from, to Vec2)   {}
func (nopSurface) HideGhostWire()                           {}
func (nopSurface) SetMarquee(r Rect, visible bool)          {}

type nopCompiler struct{}

func (nopCompiler) MarkDirty() {}

type nopPersistence struct{}

func (nopPersistence) AutoSave() {}

type nopDetails struct{}

func (nopDetails) ShowNode(n *Node) {}
func (nopDetails) Clear()           {}

type nopMenu struct{}

func (nopMenu) Show(x, y float64, from *Pin) {}
