package wisteria

// pinHitRadius is the pick distance around a pin anchor, in world units.
const pinHitRadius = 8

type pointerPhase uint8

const (
	phaseIdle pointerPhase = iota
	phaseWiring
	phaseDragging
	phasePanning
	phaseMarqueeing
)

// interaction holds the transient pointer gesture state. Exactly one phase
// is active at a time; the right button is tracked separately because it
// only acts on release.
type interaction struct {
	phase       pointerPhase
	pin         *Pin
	dragOffsets map[string]Vec2
	origin      Vec2 // screen coords at press
	last        Vec2 // screen coords at most recent event
	rmbDown     bool
	moved       bool
}

func (st *interaction) reset() {
	st.phase = phaseIdle
	st.pin = nil
	st.dragOffsets = nil
}

// hitTest finds the topmost pin within pick range of the world point, or
// failing that the topmost node under it. Nodes later in draw order win.
func (g *Graph) hitTest(wx, wy float64) (*Pin, *Node) {
	for i := len(g.order) - 1; i >= 0; i-- {
		n := g.nodes[g.order[i]]
		if n == nil || n.view == nil || !n.view.Attached() {
			continue
		}
		for _, p := range n.Pins {
			anchor, ok := n.view.PinAnchor(p)
			if !ok {
				continue
			}
			dx, dy := wx-anchor.X, wy-anchor.Y
			if dx*dx+dy*dy <= pinHitRadius*pinHitRadius {
				return p, n
			}
		}
		if n.view.Bounds().Contains(wx, wy) {
			return nil, n
		}
	}
	return nil, nil
}

// PointerDown begins a gesture from a button press at screen coordinates.
func (g *Graph) PointerDown(sx, sy float64, button MouseButton, mods KeyModifiers) {
	st := &g.state
	st.origin = Vec2{X: sx, Y: sy}
	st.last = st.origin
	st.moved = false

	g.wiring.ClearLinkSelection()

	if button == MouseButtonRight {
		st.rmbDown = true
		return
	}
	if button == MouseButtonMiddle || (button == MouseButtonLeft && mods.Has(ModSpace)) {
		st.phase = phasePanning
		return
	}
	if button != MouseButtonLeft {
		return
	}

	world := g.view.ScreenToWorld(Vec2{X: sx, Y: sy})
	pin, node := g.hitTest(world.X, world.Y)

	if pin != nil {
		if mods.Has(ModAlt) && pin.IsConnected() {
			g.wiring.BreakPinLinks(pin.FullID)
		}
		st.phase = phaseWiring
		st.pin = pin
		g.wiring.UpdateGhostWire(pin, world.X, world.Y)
		return
	}

	if node != nil {
		mode := SelectNew
		switch {
		case mods.Has(ModCtrl):
			mode = SelectToggle
		case mods.Has(ModShift):
			mode = SelectAdd
		}
		if mode == SelectNew {
			if !g.IsSelected(node.ID) {
				g.SelectNode(node.ID, false, SelectNew)
			}
		} else {
			g.SelectNode(node.ID, true, mode)
		}
		st.phase = phaseDragging
		st.dragOffsets = make(map[string]Vec2)
		for _, id := range g.SelectedNodes() {
			if sel := g.nodes[id]; sel != nil {
				st.dragOffsets[id] = Vec2{X: world.X - sel.X, Y: world.Y - sel.Y}
			}
		}
		return
	}

	// Empty canvas: start a marquee.
	st.phase = phaseMarqueeing
	if !mods.Has(ModCtrl) && !mods.Has(ModShift) && !mods.Has(ModAlt) {
		g.ClearSelection()
	}
	g.surface.SetMarquee(Rect{X: world.X, Y: world.Y}, true)
}

// PointerMove advances the active gesture to new screen coordinates.
func (g *Graph) PointerMove(sx, sy float64) {
	st := &g.state
	dx, dy := sx-st.last.X, sy-st.last.Y
	st.last = Vec2{X: sx, Y: sy}
	if dx != 0 || dy != 0 {
		st.moved = true
	}

	if st.phase == phasePanning || st.rmbDown {
		g.view.PanX += dx
		g.view.PanY += dy
		return
	}

	world := g.view.ScreenToWorld(Vec2{X: sx, Y: sy})
	switch st.phase {
	case phaseDragging:
		for id, off := range st.dragOffsets {
			n := g.nodes[id]
			if n == nil {
				continue
			}
			n.X = world.X - off.X
			n.Y = world.Y - off.Y
			g.surface.RefreshNode(n)
			g.RedrawNodeWires(id)
		}
	case phaseWiring:
		g.wiring.UpdateGhostWire(st.pin, world.X, world.Y)
	case phaseMarqueeing:
		origin := g.view.ScreenToWorld(st.origin)
		g.surface.SetMarquee(normRect(origin, world), true)
	}
}

// PointerUp completes the active gesture at the release coordinates.
func (g *Graph) PointerUp(sx, sy float64, button MouseButton, mods KeyModifiers) {
	st := &g.state

	if button == MouseButtonRight {
		if st.rmbDown && !st.moved {
			g.menu.Show(sx, sy, nil)
		}
		st.rmbDown = false
		return
	}

	world := g.view.ScreenToWorld(Vec2{X: sx, Y: sy})

	switch st.phase {
	case phaseWiring:
		target, _ := g.hitTest(world.X, world.Y)
		if target != nil {
			if g.wiring.CanConnect(st.pin, target) {
				g.wiring.CreateConnection(st.pin, target)
			}
		} else if st.pin != nil {
			// Dropped on empty canvas: offer context-filtered node creation.
			g.menu.Show(sx, sy, st.pin)
		}
		g.surface.HideGhostWire()

	case phaseDragging:
		g.SnapSelectedToGrid()
		g.graphChanged()

	case phaseMarqueeing:
		g.surface.SetMarquee(Rect{}, false)
		mode := SelectNew
		switch {
		case mods.Has(ModShift):
			mode = SelectAdd
		case mods.Has(ModCtrl):
			mode = SelectToggle
		case mods.Has(ModAlt):
			mode = SelectRemove
		}
		origin := g.view.ScreenToWorld(st.origin)
		g.SelectNodesInRect(normRect(origin, world), mode)
	}

	st.reset()
}

// Wheel zooms the view about the cursor. Positive deltaY zooms out.
func (g *Graph) Wheel(sx, sy, deltaY float64) {
	g.view.ZoomAt(Vec2{X: sx, Y: sy}, deltaY)
}
