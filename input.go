package wisteria

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		mods |= ModSpace
	}
	return mods
}

// InputPoller translates ebiten's polled mouse state into the graph's
// pointer events. Call Update once per frame before Graph.Update.
type InputPoller struct {
	graph  *Graph
	down   bool
	button MouseButton
	lastX  float64
	lastY  float64
}

// NewInputPoller creates a poller feeding the given graph.
func NewInputPoller(g *Graph) *InputPoller {
	return &InputPoller{graph: g}
}

// Update polls the mouse and dispatches pointer events for this frame.
func (ip *InputPoller) Update() {
	mods := readModifiers()
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)

	// If a button is already held, keep reporting it until release so the
	// gesture cannot change buttons mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if ip.down {
		switch ip.button {
		case MouseButtonLeft:
			pressed = left
		case MouseButtonRight:
			pressed = right
		case MouseButtonMiddle:
			pressed = middle
		}
		button = ip.button
	} else if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	switch {
	case pressed && !ip.down:
		ip.down = true
		ip.button = button
		ip.graph.PointerDown(sx, sy, button, mods)
	case !pressed && ip.down:
		ip.down = false
		ip.graph.PointerUp(sx, sy, ip.button, mods)
	}

	if sx != ip.lastX || sy != ip.lastY {
		ip.graph.PointerMove(sx, sy)
		ip.lastX = sx
		ip.lastY = sy
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		ip.graph.Wheel(sx, sy, -wy)
	}
}
