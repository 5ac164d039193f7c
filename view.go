package wisteria

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	minZoom  = 0.2
	maxZoom  = 1.5
	zoomStep = 1.1
)

// scrollAnim holds active scroll-to tweens for pan X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// View maps world coordinates to screen coordinates through a pan offset
// and a zoom factor: screen = world*Zoom + Pan.
type View struct {
	// PanX and PanY are the screen-space translation applied after zoom.
	PanX, PanY float64
	// Zoom is the scale factor, clamped to [minZoom, maxZoom].
	Zoom float64
	// Viewport is the screen-space rectangle this view renders into.
	Viewport Rect

	scroll *scrollAnim
}

// NewView creates a view with no pan and unit zoom.
func NewView(viewport Rect) *View {
	return &View{
		Zoom:     1.0,
		Viewport: viewport,
	}
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *View) ScreenToWorld(s Vec2) Vec2 {
	return Vec2{
		X: (s.X - v.PanX) / v.Zoom,
		Y: (s.Y - v.PanY) / v.Zoom,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *View) WorldToScreen(wpt Vec2) Vec2 {
	return Vec2{
		X: wpt.X*v.Zoom + v.PanX,
		Y: wpt.Y*v.Zoom + v.PanY,
	}
}

// ZoomAt scales the view about the given screen point so the world point
// under the cursor stays put. Negative deltaY zooms in.
func (v *View) ZoomAt(s Vec2, deltaY float64) {
	before := v.ScreenToWorld(s)
	if deltaY < 0 {
		v.Zoom *= zoomStep
	} else {
		v.Zoom /= zoomStep
	}
	if v.Zoom < minZoom {
		v.Zoom = minZoom
	}
	if v.Zoom > maxZoom {
		v.Zoom = maxZoom
	}
	v.PanX = s.X - before.X*v.Zoom
	v.PanY = s.Y - before.Y*v.Zoom
}

// ScrollTo animates the pan so the given world point lands on the viewport
// center over duration seconds.
func (v *View) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	cx := v.Viewport.X + v.Viewport.Width/2
	cy := v.Viewport.Y + v.Viewport.Height/2
	targetX := cx - x*v.Zoom
	targetY := cy - y*v.Zoom
	v.scroll = &scrollAnim{
		tweenX: gween.New(float32(v.PanX), float32(targetX), duration, easeFn),
		tweenY: gween.New(float32(v.PanY), float32(targetY), duration, easeFn),
	}
}

// CenterOn scrolls to the node's position.
func (v *View) CenterOn(n *Node, duration float32) {
	if n == nil {
		return
	}
	x, y := n.X, n.Y
	if n.view != nil && n.view.Attached() {
		c := n.view.Bounds().Center()
		x, y = c.X, c.Y
	}
	v.ScrollTo(x, y, duration, ease.OutQuad)
}

// Update advances the scroll animation. Called from Graph.Update().
func (v *View) Update(dt float32) {
	if v.scroll == nil {
		return
	}
	if !v.scroll.doneX {
		val, done := v.scroll.tweenX.Update(dt)
		v.PanX = float64(val)
		v.scroll.doneX = done
	}
	if !v.scroll.doneY {
		val, done := v.scroll.tweenY.Update(dt)
		v.PanY = float64(val)
		v.scroll.doneY = done
	}
	if v.scroll.doneX && v.scroll.doneY {
		v.scroll = nil
	}
}
