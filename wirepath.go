package wisteria

import "math"

// WireSegments is the default sample count for wire curves.
const WireSegments = 20

// WirePoints samples the cubic Bézier path of a wire from an output anchor
// to an input anchor. The control points extend horizontally from each
// anchor so wires leave outputs rightward and enter inputs leftward even
// when the endpoints are vertically stacked or reversed.
//
// buf is reused when it has capacity; pass nil to allocate. The returned
// slice holds segments+1 points.
func WirePoints(from, to Vec2, segments int, buf []Vec2) []Vec2 {
	if segments <= 0 {
		segments = WireSegments
	}
	n := segments + 1
	if cap(buf) < n {
		buf = make([]Vec2, n)
	}
	buf = buf[:n]

	ext := math.Abs(to.X-from.X) / 2
	if ext < 30 {
		ext = 30
	}
	c1 := Vec2{X: from.X + ext, Y: from.Y}
	c2 := Vec2{X: to.X - ext, Y: to.Y}

	for i := 0; i < n; i++ {
		t := float64(i) / float64(segments)
		u := 1 - t
		u2 := u * u
		t2 := t * t
		buf[i] = Vec2{
			X: u2*u*from.X + 3*u2*t*c1.X + 3*u*t2*c2.X + t2*t*to.X,
			Y: u2*u*from.Y + 3*u2*t*c1.Y + 3*u*t2*c2.Y + t2*t*to.Y,
		}
	}
	return buf
}
