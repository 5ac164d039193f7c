package wisteria

import "testing"

func TestWirePointsEndpoints(t *testing.T) {
	from := Vec2{X: 100, Y: 50}
	to := Vec2{X: 400, Y: 200}
	pts := WirePoints(from, to, WireSegments, nil)

	if len(pts) != WireSegments+1 {
		t.Fatalf("len = %d, want %d", len(pts), WireSegments+1)
	}
	if pts[0] != from {
		t.Errorf("first point = %v, want %v", pts[0], from)
	}
	last := pts[len(pts)-1]
	if !approxEqual(last.X, to.X, 1e-9) || !approxEqual(last.Y, to.Y, 1e-9) {
		t.Errorf("last point = %v, want %v", last, to)
	}
}

func TestWirePointsLeaveHorizontally(t *testing.T) {
	// Even with the destination behind the source, the curve must leave the
	// output rightward and enter the input leftward.
	from := Vec2{X: 400, Y: 100}
	to := Vec2{X: 100, Y: 100}
	pts := WirePoints(from, to, WireSegments, nil)

	if pts[1].X <= from.X {
		t.Errorf("curve leaves at x=%v, want > %v", pts[1].X, from.X)
	}
	if pts[len(pts)-2].X <= to.X {
		t.Errorf("curve enters at x=%v, want > %v", pts[len(pts)-2].X, to.X)
	}
}

func TestWirePointsReusesBuffer(t *testing.T) {
	buf := make([]Vec2, 0, 64)
	pts := WirePoints(Vec2{}, Vec2{X: 100}, WireSegments, buf)
	if &pts[0] != &buf[:1][0] {
		t.Error("buffer with capacity was not reused")
	}

	pts2 := WirePoints(Vec2{}, Vec2{X: 100}, 100, pts)
	if len(pts2) != 101 {
		t.Errorf("len = %d, want 101", len(pts2))
	}
}

func TestWirePointsDefaultSegments(t *testing.T) {
	pts := WirePoints(Vec2{}, Vec2{X: 10}, 0, nil)
	if len(pts) != WireSegments+1 {
		t.Errorf("len = %d, want default %d", len(pts), WireSegments+1)
	}
}
