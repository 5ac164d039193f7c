package wisteria

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Node box metrics ---

const (
	nodeWidth    = 160
	headerHeight = 24
	pinPitch     = 18
	wireWidth    = 3
)

// --- White pixel singleton (no sync.Once — wisteria is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Untextured geometry samples it and takes its color from the vertices.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// pinColor returns the tint used for a pin's dot and its wires.
func pinColor(t PinType) Color {
	switch t {
	case PinExec:
		return Color{1, 1, 1, 1}
	case PinBool:
		return Color{0.55, 0.1, 0.1, 1}
	case PinByte, PinInt:
		return Color{0.1, 0.65, 0.55, 1}
	case PinFloat:
		return Color{0.55, 0.85, 0.25, 1}
	case PinString, PinName, PinText:
		return Color{0.85, 0.3, 0.65, 1}
	case PinVector:
		return Color{0.95, 0.75, 0.2, 1}
	case PinRotator:
		return Color{0.45, 0.6, 0.95, 1}
	case PinTransform:
		return Color{0.95, 0.45, 0.1, 1}
	case PinObject, PinTexture:
		return Color{0.2, 0.55, 0.9, 1}
	default:
		return Color{0.7, 0.7, 0.7, 1}
	}
}

// --- BoxView ---

// BoxView is the standard rectangular node visual: a header bar plus one
// row per pin rank, inputs anchored on the left edge and outputs on the
// right.
type BoxView struct {
	node     *Node
	attached bool
}

func newBoxView(n *Node) *BoxView {
	return &BoxView{node: n, attached: true}
}

func (v *BoxView) Attached() bool {
	return v.attached
}

// pinRows returns the number of pin rows: inputs and outputs stack in
// parallel columns, so the taller column wins.
func (v *BoxView) pinRows() int {
	var ins, outs int
	for _, p := range v.node.Pins {
		if p.Dir == PinIn {
			ins++
		} else {
			outs++
		}
	}
	if ins > outs {
		return ins
	}
	return outs
}

func (v *BoxView) Bounds() Rect {
	return Rect{
		X:      v.node.X,
		Y:      v.node.Y,
		Width:  nodeWidth,
		Height: headerHeight + float64(v.pinRows())*pinPitch,
	}
}

func (v *BoxView) PinAnchor(p *Pin) (Vec2, bool) {
	row := 0
	for _, other := range v.node.Pins {
		if other == p {
			x := v.node.X
			if p.Dir == PinOut {
				x += nodeWidth
			}
			y := v.node.Y + headerHeight + float64(row)*pinPitch + pinPitch/2
			return Vec2{X: x, Y: y}, true
		}
		if other.Dir == p.Dir {
			row++
		}
	}
	return Vec2{}, false
}

// --- EbitenSurface ---

type wireShape struct {
	from, to Vec2
	typ      PinType
	selected bool
}

type ghostWire struct {
	from, to Vec2
	typ      PinType
}

// EbitenSurface renders the graph with ebiten: node boxes, wire ribbons, an
// in-progress ghost wire, and the marquee rectangle. It retains wire
// geometry between frames; the graph pushes updates through the Surface
// interface.
type EbitenSurface struct {
	views map[string]*BoxView
	wires map[string]wireShape

	ghost          *ghostWire
	marquee        Rect
	marqueeVisible bool

	// Reused buffers to avoid per-frame allocation.
	ptsBuf []Vec2
	verts  []ebiten.Vertex
	inds   []uint16
}

// NewEbitenSurface creates an empty surface.
func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{
		views: make(map[string]*BoxView),
		wires: make(map[string]wireShape),
	}
}

func (s *EbitenSurface) AttachNode(n *Node) NodeView {
	v := newBoxView(n)
	s.views[n.ID] = v
	return v
}

func (s *EbitenSurface) RefreshNode(n *Node) {
	// Box geometry derives from the node each frame; nothing cached here.
}

func (s *EbitenSurface) DetachNode(n *Node) {
	if v := s.views[n.ID]; v != nil {
		v.attached = false
	}
	delete(s.views, n.ID)
}

func (s *EbitenSurface) DrawWire(l *Link, from, to Vec2, selected bool) {
	s.wires[l.ID] = wireShape{from: from, to: to, typ: l.Start.Type, selected: selected}
}

func (s *EbitenSurface) RemoveWire(linkID string) {
	delete(s.wires, linkID)
}

func (s *EbitenSurface) DrawGhostWire(t PinType, from, to Vec2) {
	s.ghost = &ghostWire{from: from, to: to, typ: t}
}

func (s *EbitenSurface) HideGhostWire() {
	s.ghost = nil
}

func (s *EbitenSurface) SetMarquee(r Rect, visible bool) {
	s.marquee = r
	s.marqueeVisible = visible
}

// Draw renders the whole graph to screen using the graph's view transform.
// Wires draw under nodes so ribbons disappear behind the boxes they feed.
func (s *EbitenSurface) Draw(screen *ebiten.Image, g *Graph) {
	view := g.View()

	for _, l := range g.Wiring().Links() {
		w, ok := s.wires[l.ID]
		if !ok {
			continue
		}
		c := pinColor(w.typ)
		if w.selected {
			c = Color{1, 0.85, 0.2, 1}
		}
		s.drawRibbon(screen, view, w.from, w.to, wireWidth, c)
	}
	if s.ghost != nil {
		c := pinColor(s.ghost.typ)
		c.A = 0.6
		s.drawRibbon(screen, view, s.ghost.from, s.ghost.to, wireWidth, c)
	}

	for _, n := range g.Nodes() {
		v := s.views[n.ID]
		if v == nil {
			continue
		}
		s.drawNodeBox(screen, view, g, n, v)
	}

	if s.marqueeVisible {
		s.fillScreenRect(screen, view.WorldToScreen(Vec2{X: s.marquee.X, Y: s.marquee.Y}),
			s.marquee.Width*view.Zoom, s.marquee.Height*view.Zoom,
			Color{0.3, 0.55, 0.9, 0.25})
	}
}

func (s *EbitenSurface) drawNodeBox(screen *ebiten.Image, view *View, g *Graph, n *Node, v *BoxView) {
	b := v.Bounds()
	origin := view.WorldToScreen(Vec2{X: b.X, Y: b.Y})
	w := b.Width * view.Zoom
	h := b.Height * view.Zoom

	body := Color{0.13, 0.13, 0.16, 0.95}
	header := Color{0.2, 0.28, 0.42, 1}
	if g.IsSelected(n.ID) {
		header = Color{0.85, 0.6, 0.15, 1}
	}
	s.fillScreenRect(screen, origin, w, h, body)
	s.fillScreenRect(screen, origin, w, headerHeight*view.Zoom, header)

	// Pin dots.
	r := 4 * view.Zoom
	for _, p := range n.Pins {
		anchor, ok := v.PinAnchor(p)
		if !ok {
			continue
		}
		sp := view.WorldToScreen(anchor)
		s.fillScreenRect(screen, Vec2{X: sp.X - r/2, Y: sp.Y - r/2}, r, r, pinColor(p.Type))
	}
}

// fillScreenRect draws an axis-aligned filled rectangle in screen space.
func (s *EbitenSurface) fillScreenRect(screen *ebiten.Image, origin Vec2, w, h float64, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(origin.X, origin.Y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	screen.DrawImage(ensureWhitePixel(), op)
}

// drawRibbon tessellates a wire curve into a constant-width triangle strip
// and draws it in one DrawTriangles call.
func (s *EbitenSurface) drawRibbon(screen *ebiten.Image, view *View, from, to Vec2, width float64, c Color) {
	s.ptsBuf = WirePoints(from, to, WireSegments, s.ptsBuf)
	pts := s.ptsBuf
	n := len(pts)
	if n < 2 {
		return
	}

	numVerts := n * 2
	numInds := (n - 1) * 6
	if cap(s.verts) < numVerts {
		s.verts = make([]ebiten.Vertex, numVerts)
	}
	s.verts = s.verts[:numVerts]
	if cap(s.inds) < numInds {
		s.inds = make([]uint16, numInds)
	}
	s.inds = s.inds[:numInds]

	halfW := width / 2
	cr, cg, cb, ca := float32(c.R), float32(c.G), float32(c.B), float32(c.A)

	for i := 0; i < n; i++ {
		var nx, ny float64
		if i == 0 {
			nx, ny = perpendicular(pts[0], pts[1])
		} else if i == n-1 {
			nx, ny = perpendicular(pts[n-2], pts[n-1])
		} else {
			nx0, ny0 := perpendicular(pts[i-1], pts[i])
			nx1, ny1 := perpendicular(pts[i], pts[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			ln := math.Sqrt(nx*nx + ny*ny)
			if ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
		}

		sp := view.WorldToScreen(Vec2{X: pts[i].X + nx*halfW, Y: pts[i].Y + ny*halfW})
		sq := view.WorldToScreen(Vec2{X: pts[i].X - nx*halfW, Y: pts[i].Y - ny*halfW})
		vi := i * 2
		s.verts[vi] = ebiten.Vertex{
			DstX: float32(sp.X), DstY: float32(sp.Y),
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
		s.verts[vi+1] = ebiten.Vertex{
			DstX: float32(sq.X), DstY: float32(sq.Y),
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}

	ii := 0
	for i := 0; i < n-1; i++ {
		vi := uint16(i * 2)
		s.inds[ii+0] = vi
		s.inds[ii+1] = vi + 1
		s.inds[ii+2] = vi + 2
		s.inds[ii+3] = vi + 1
		s.inds[ii+4] = vi + 3
		s.inds[ii+5] = vi + 2
		ii += 6
	}

	screen.DrawTriangles(s.verts, s.inds, ensureWhitePixel(), nil)
}

// perpendicular returns the unit normal of the segment a->b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, 0
	}
	return -dy / ln, dx / ln
}
