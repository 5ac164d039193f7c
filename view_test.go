package wisteria

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestViewDefaults(t *testing.T) {
	v := NewView(Rect{Width: 800, Height: 600})
	if v.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", v.Zoom)
	}
	if v.PanX != 0 || v.PanY != 0 {
		t.Errorf("pan = (%f,%f), want origin", v.PanX, v.PanY)
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	v := NewView(Rect{Width: 800, Height: 600})
	v.PanX, v.PanY = 120, -45
	v.Zoom = 1.3

	orig := Vec2{X: 333, Y: 777}
	got := v.WorldToScreen(v.ScreenToWorld(orig))
	if !approxEqual(got.X, orig.X, 1e-9) || !approxEqual(got.Y, orig.Y, 1e-9) {
		t.Errorf("round trip %v -> %v", orig, got)
	}
}

func TestZoomClamp(t *testing.T) {
	v := NewView(Rect{Width: 800, Height: 600})
	for i := 0; i < 100; i++ {
		v.ZoomAt(Vec2{X: 400, Y: 300}, -1)
	}
	if v.Zoom != maxZoom {
		t.Errorf("Zoom = %f after zooming in, want clamp %f", v.Zoom, maxZoom)
	}
	for i := 0; i < 100; i++ {
		v.ZoomAt(Vec2{X: 400, Y: 300}, 1)
	}
	if v.Zoom != minZoom {
		t.Errorf("Zoom = %f after zooming out, want clamp %f", v.Zoom, minZoom)
	}
}

func TestScrollToFinishesAtTarget(t *testing.T) {
	v := NewView(Rect{Width: 800, Height: 600})
	v.ScrollTo(1000, 500, 0.5, ease.Linear)

	for i := 0; i < 60; i++ {
		v.Update(1.0 / 60.0)
	}

	got := v.WorldToScreen(Vec2{X: 1000, Y: 500})
	if !approxEqual(got.X, 400, 0.5) || !approxEqual(got.Y, 300, 0.5) {
		t.Errorf("target on screen at %v, want viewport center (400,300)", got)
	}
}

func TestCenterOnAnimatesPan(t *testing.T) {
	g, _, _, _ := newTestGraph(t)
	g.SetViewport(Rect{Width: 800, Height: 600})
	n := mustAddNode(t, g, "Add", 1000, 500)

	g.View().CenterOn(n, 0.5)
	for i := 0; i < 60; i++ {
		g.Update(1.0 / 60.0)
	}

	center := n.View().Bounds().Center()
	got := g.View().WorldToScreen(center)
	if !approxEqual(got.X, 400, 0.5) || !approxEqual(got.Y, 300, 0.5) {
		t.Errorf("node center on screen at %v, want viewport center (400,300)", got)
	}
	if g.View().scroll != nil {
		t.Error("finished animation not released")
	}
}
