// Package wisteria is a node-graph engine for visual scripting and material
// editors, with an optional [Ebitengine] render surface.
//
// Wisteria models a document as typed [Node] instances wired together by
// [Link] edges between directional [Pin] endpoints. Two controllers do the
// work: [Wiring] owns the links and decides connection legality (including
// automatic insertion of type-conversion adapter nodes), and [Graph] owns
// the nodes, selection, pointer interaction, and serialization.
//
// # Quick start
//
// Build a template catalog, create a graph, and add nodes:
//
//	reg := wisteria.NewRegistry()
//	reg.Register(&wisteria.Template{
//		Key: "Add", Title: "Add",
//		Pins: []wisteria.PinSpec{
//			{ID: "a", Name: "A", Type: wisteria.PinFloat, Dir: wisteria.PinIn},
//			{ID: "b", Name: "B", Type: wisteria.PinFloat, Dir: wisteria.PinIn},
//			{ID: "sum", Name: "Sum", Type: wisteria.PinFloat, Dir: wisteria.PinOut},
//		},
//	})
//
//	g := wisteria.NewGraph(reg)
//	a := g.AddNode("Add", 100, 100)
//	b := g.AddNode("Add", 400, 160)
//	g.Wiring().CreateConnection(
//		a.FindPinByID(a.ID+"-sum"),
//		b.FindPinByID(b.ID+"-a"),
//	)
//
// A graph is fully functional headless; every external collaborator
// ([Surface], [Compiler], [Persistence], [Details], [ActionMenu]) defaults
// to a no-op and can be injected for editor integration.
//
// # Rendering and input
//
// For an interactive editor, attach an [EbitenSurface] and drive the graph
// from an [ebiten.Game]:
//
//	surface := wisteria.NewEbitenSurface()
//	g.SetSurface(surface)
//	poller := wisteria.NewInputPoller(g)
//
//	// in Update: poller.Update(); g.Update(dt)
//	// in Draw:   surface.Draw(screen, g)
//
// Documents round-trip through [Graph.SaveJSON] and [Graph.LoadJSON].
//
// [Ebitengine]: https://ebitengine.org
package wisteria
