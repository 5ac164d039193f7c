package wisteria

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout
// the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the rectangle's center point.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// normRect builds a rectangle from two opposite corners in either order.
func normRect(a, b Vec2) Rect {
	x, y := a.X, a.Y
	if b.X < x {
		x = b.X
	}
	if b.Y < y {
		y = b.Y
	}
	w := a.X - b.X
	if w < 0 {
		w = -w
	}
	h := a.Y - b.Y
	if h < 0 {
		h = -h
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// PinType tags the value carried by a pin. The tag set mirrors the template
// catalog: execution flow plus the scalar, vector, and resource value kinds.
type PinType string

const (
	PinExec      PinType = "exec"
	PinBool      PinType = "bool"
	PinByte      PinType = "byte"
	PinInt       PinType = "int"
	PinFloat     PinType = "float"
	PinString    PinType = "string"
	PinName      PinType = "name"
	PinText      PinType = "text"
	PinVector    PinType = "vector"
	PinRotator   PinType = "rotator"
	PinTransform PinType = "transform"
	PinObject    PinType = "object"
	PinTexture   PinType = "texture"
)

// PinDir distinguishes input pins from output pins.
type PinDir string

const (
	PinIn  PinDir = "in"
	PinOut PinDir = "out"
)

// ContainerKind tags a pin's container shape. Both ends of a link must carry
// the same container kind. An empty tag is equivalent to ContainerScalar,
// so templates may omit it for plain pins.
type ContainerKind string

const (
	ContainerScalar ContainerKind = "scalar"
	ContainerArray  ContainerKind = "array"
	ContainerMap    ContainerKind = "map"
)

// normalized maps the empty tag to ContainerScalar.
func (c ContainerKind) normalized() ContainerKind {
	if c == "" {
		return ContainerScalar
	}
	return c
}

// SelectMode controls how a node's selection membership is changed.
type SelectMode uint8

const (
	// SelectNew clears the prior selection (unless suppressed) then adds.
	SelectNew SelectMode = iota
	// SelectAdd adds to the selection without clearing.
	SelectAdd
	// SelectRemove removes from the selection without clearing.
	SelectRemove
	// SelectToggle flips selection membership without clearing.
	SelectToggle
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
	ModSpace                          // Space bar (held; turns a primary drag into a pan)
)

// Has reports whether all bits of m are set.
func (k KeyModifiers) Has(m KeyModifiers) bool {
	return k&m == m
}
