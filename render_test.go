package wisteria

import "testing"

func TestBoxViewGeometry(t *testing.T) {
	g, _, _, _ := newTestGraph(t)
	s := NewEbitenSurface()
	g.SetSurface(s)

	// Add has 2 inputs and 1 output: two pin rows.
	n := mustAddNode(t, g, "Add", 100, 100)
	v := n.View().(*BoxView)

	b := v.Bounds()
	want := Rect{X: 100, Y: 100, Width: nodeWidth, Height: headerHeight + 2*pinPitch}
	if b != want {
		t.Errorf("Bounds = %+v, want %+v", b, want)
	}

	a, ok := v.PinAnchor(pin(t, n, "a"))
	if !ok || a.X != 100 || a.Y != 100+headerHeight+pinPitch/2 {
		t.Errorf("input anchor = %v, %v", a, ok)
	}
	bAnchor, _ := v.PinAnchor(pin(t, n, "b"))
	if bAnchor.Y != a.Y+pinPitch {
		t.Errorf("second input row y = %v, want %v", bAnchor.Y, a.Y+pinPitch)
	}
	out, _ := v.PinAnchor(pin(t, n, "sum"))
	if out.X != 100+nodeWidth || out.Y != a.Y {
		t.Errorf("output anchor = %v", out)
	}
}

func TestBoxViewDetach(t *testing.T) {
	g, _, _, _ := newTestGraph(t)
	s := NewEbitenSurface()
	g.SetSurface(s)
	n := mustAddNode(t, g, "Add", 0, 0)
	v := n.View()

	g.SelectNode(n.ID, false, SelectNew)
	g.DeleteSelectedNodes()

	if v.Attached() {
		t.Error("view still attached after node delete")
	}
	if s.views[n.ID] != nil {
		t.Error("surface kept the detached view")
	}
}

func TestSurfaceRetainsWireShapes(t *testing.T) {
	g, _, _, _ := newTestGraph(t)
	s := NewEbitenSurface()
	g.SetSurface(s)
	add := mustAddNode(t, g, "Add", 0, 0)
	mul := mustAddNode(t, g, "Multiply", 400, 0)
	l := connect(t, g, pin(t, add, "sum"), pin(t, mul, "a"))
	g.Update(1.0 / 60.0)

	if _, ok := s.wires[l.ID]; !ok {
		t.Fatal("wire shape not retained after draw")
	}
	g.Wiring().BreakLinkByID(l.ID)
	if _, ok := s.wires[l.ID]; ok {
		t.Error("wire shape survived link break")
	}
}

func TestPinColorDistinctPerType(t *testing.T) {
	types := []PinType{PinExec, PinBool, PinFloat, PinString, PinVector, PinObject}
	seen := make(map[Color]PinType)
	for _, typ := range types {
		c := pinColor(typ)
		if prev, ok := seen[c]; ok {
			t.Errorf("%s and %s share a color", prev, typ)
		}
		seen[c] = typ
	}
}
