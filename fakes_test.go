package wisteria

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- Fake collaborators ---

// fakeView places pin anchors on the node's left/right edges like BoxView,
// so adapter midpoints and hit tests have real geometry in headless tests.
type fakeView struct {
	node     *Node
	attached bool
}

func (v *fakeView) Attached() bool { return v.attached }

func (v *fakeView) Bounds() Rect {
	return Rect{X: v.node.X, Y: v.node.Y, Width: nodeWidth, Height: headerHeight + float64(len(v.node.Pins))*pinPitch}
}

func (v *fakeView) PinAnchor(p *Pin) (Vec2, bool) {
	row := 0
	for _, other := range v.node.Pins {
		if other == p {
			x := v.node.X
			if p.Dir == PinOut {
				x += nodeWidth
			}
			return Vec2{X: x, Y: v.node.Y + headerHeight + float64(row)*pinPitch + pinPitch/2}, true
		}
		if other.Dir == p.Dir {
			row++
		}
	}
	return Vec2{}, false
}

// fakeSurface records surface calls and hands out detachable views.
type fakeSurface struct {
	views        map[string]*fakeView
	wires        map[string]bool // linkID -> selected flag at last draw
	refreshCount int
	ghostVisible bool
	ghostFrom    Vec2
	ghostTo      Vec2
	marquee      Rect
	marqueeOn    bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		views: make(map[string]*fakeView),
		wires: make(map[string]bool),
	}
}

func (s *fakeSurface) AttachNode(n *Node) NodeView {
	v := &fakeView{node: n, attached: true}
	s.views[n.ID] = v
	return v
}

func (s *fakeSurface) RefreshNode(n *Node) { s.refreshCount++ }

func (s *fakeSurface) DetachNode(n *Node) {
	if v := s.views[n.ID]; v != nil {
		v.attached = false
	}
	delete(s.views, n.ID)
}

func (s *fakeSurface) DrawWire(l *Link, from, to Vec2, selected bool) {
	s.wires[l.ID] = selected
}

func (s *fakeSurface) RemoveWire(linkID string) { delete(s.wires, linkID) }

func (s *fakeSurface) DrawGhostWire(t PinType, from, to Vec2) {
	s.ghostVisible = true
	s.ghostFrom = from
	s.ghostTo = to
}

func (s *fakeSurface) HideGhostWire() { s.ghostVisible = false }

func (s *fakeSurface) SetMarquee(r Rect, visible bool) {
	s.marquee = r
	s.marqueeOn = visible
}

type countCompiler struct{ dirty int }

func (c *countCompiler) MarkDirty() { c.dirty++ }

type countPersistence struct{ saves int }

func (p *countPersistence) AutoSave() { p.saves++ }

type recordDetails struct {
	shown  *Node
	clears int
}

func (d *recordDetails) ShowNode(n *Node) { d.shown = n }
func (d *recordDetails) Clear() {
	d.shown = nil
	d.clears++
}

type recordMenu struct {
	shows   int
	lastPin *Pin
	lastX   float64
	lastY   float64
}

func (m *recordMenu) Show(x, y float64, from *Pin) {
	m.shows++
	m.lastX = x
	m.lastY = y
	m.lastPin = from
}

// --- Test catalog ---

// buildTestCatalog registers the templates the graph tests exercise:
// float math nodes, exec flow nodes, a singleton, a custom-pin event, and
// a float-to-string conversion adapter.
func buildTestCatalog() *Registry {
	reg := NewRegistry()
	reg.Register(&Template{
		Key: "Add", Title: "Add",
		Pins: []PinSpec{
			{ID: "a", Name: "A", Type: PinFloat, Dir: PinIn, Default: 0.0},
			{ID: "b", Name: "B", Type: PinFloat, Dir: PinIn, Default: 0.0},
			{ID: "sum", Name: "Sum", Type: PinFloat, Dir: PinOut},
		},
	})
	reg.Register(&Template{
		Key: "Multiply", Title: "Multiply",
		Pins: []PinSpec{
			{ID: "a", Name: "A", Type: PinFloat, Dir: PinIn, Default: 1.0},
			{ID: "b", Name: "B", Type: PinFloat, Dir: PinIn, Default: 1.0},
			{ID: "product", Name: "Product", Type: PinFloat, Dir: PinOut},
		},
	})
	reg.Register(&Template{
		Key: "PrintString", Title: "Print String",
		Pins: []PinSpec{
			{ID: "exec_in", Name: "", Type: PinExec, Dir: PinIn},
			{ID: "text", Name: "Text", Type: PinString, Dir: PinIn, Default: "Hello"},
			{ID: "exec_out", Name: "", Type: PinExec, Dir: PinOut},
		},
	})
	reg.Register(&Template{
		Key: "Sequence", Title: "Sequence",
		Pins: []PinSpec{
			{ID: "exec_in", Name: "", Type: PinExec, Dir: PinIn},
			{ID: "then_0", Name: "Then 0", Type: PinExec, Dir: PinOut},
			{ID: "then_1", Name: "Then 1", Type: PinExec, Dir: PinOut},
		},
	})
	reg.Register(&Template{
		Key: "Output", Title: "Output", Singleton: true,
		Pins: []PinSpec{
			{ID: "value", Name: "Value", Type: PinFloat, Dir: PinIn},
		},
	})
	reg.Register(&Template{
		Key: "OnEvent", Title: "On Event", CustomPins: true,
		Pins: []PinSpec{
			{ID: "exec_out", Name: "", Type: PinExec, Dir: PinOut},
		},
	})
	reg.Register(&Template{
		Key: "Conv_FloatToString", Title: "Float to String",
		Pins: []PinSpec{
			{ID: "val_in", Name: "In", Type: PinFloat, Dir: PinIn},
			{ID: "val_out", Name: "Out", Type: PinString, Dir: PinOut},
		},
	})
	reg.RegisterConversion(PinFloat, PinString, "Conv_FloatToString")
	return reg
}

// newTestGraph wires a graph to recording fakes.
func newTestGraph(t *testing.T) (*Graph, *fakeSurface, *countCompiler, *countPersistence) {
	t.Helper()
	g := NewGraph(buildTestCatalog())
	s := newFakeSurface()
	c := &countCompiler{}
	p := &countPersistence{}
	g.SetSurface(s)
	g.SetCompiler(c)
	g.SetPersistence(p)
	return g, s, c, p
}

// mustAddNode adds a node and fails the test on nil.
func mustAddNode(t *testing.T, g *Graph, key string, x, y float64) *Node {
	t.Helper()
	n := g.AddNode(key, x, y)
	if n == nil {
		t.Fatalf("AddNode(%q) returned nil", key)
	}
	return n
}

// pin fetches a pin by local identifier and fails the test on nil.
func pin(t *testing.T, n *Node, localID string) *Pin {
	t.Helper()
	p := n.FindPinByID(n.ID + "-" + localID)
	if p == nil {
		t.Fatalf("node %s has no pin %q", n.ID, localID)
	}
	return p
}

// connect joins two pins and returns the resulting direct link, failing the
// test if none was created between them.
func connect(t *testing.T, g *Graph, a, b *Pin) *Link {
	t.Helper()
	g.Wiring().CreateConnection(a, b)
	start, end := orient(a, b)
	for _, l := range g.Wiring().Links() {
		if l.Start == start && l.End == end {
			return l
		}
	}
	t.Fatalf("no link created between %s and %s", a.FullID, b.FullID)
	return nil
}
