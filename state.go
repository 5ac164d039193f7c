package wisteria

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GraphState is the serialized form of a graph document. Pin identifiers
// inside NodeState are node-local; LinkState carries full identifiers.
type GraphState struct {
	ID    string      `json:"id,omitempty"`
	Nodes []NodeState `json:"nodes"`
	Links []LinkState `json:"links"`
}

type NodeState struct {
	ID   string     `json:"id"`
	Key  string     `json:"key"`
	X    float64    `json:"x"`
	Y    float64    `json:"y"`
	Pins []PinState `json:"pins"`
}

type PinState struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Type      PinType       `json:"type"`
	Dir       PinDir        `json:"dir"`
	Container ContainerKind `json:"containerType,omitempty"`
	Literal   any           `json:"literalValue,omitempty"`
	IsCustom  bool          `json:"isCustom,omitempty"`
}

type LinkState struct {
	ID       string `json:"id"`
	StartPin string `json:"startPin"`
	EndPin   string `json:"endPin"`
}

// Serialize captures the graph's persistent content: nodes with their pin
// sets and literals, plus all links. View state and selection are not part
// of the document.
func (g *Graph) Serialize() GraphState {
	st := GraphState{ID: g.docID}
	for _, n := range g.Nodes() {
		ns := NodeState{ID: n.ID, Key: n.Key, X: n.X, Y: n.Y}
		for _, p := range n.Pins {
			ps := PinState{
				ID:        strings.TrimPrefix(p.FullID, n.ID+"-"),
				Name:      p.Name,
				Type:      p.Type,
				Dir:       p.Dir,
				Container: p.Container,
				IsCustom:  p.IsCustom,
			}
			if v, ok := n.Literals[p.FullID]; ok {
				ps.Literal = v
			}
			ns.Pins = append(ns.Pins, ps)
		}
		st.Nodes = append(st.Nodes, ns)
	}
	for _, l := range g.wiring.Links() {
		st.Links = append(st.Links, LinkState{
			ID:       l.ID,
			StartPin: l.Start.FullID,
			EndPin:   l.End.FullID,
		})
	}
	return st
}

// SaveJSON serializes the graph document to JSON.
func (g *Graph) SaveJSON() ([]byte, error) {
	data, err := json.MarshalIndent(g.Serialize(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("wisteria: serialize graph: %w", err)
	}
	return data, nil
}

// LoadJSON replaces the graph's content with a document parsed from JSON.
func (g *Graph) LoadJSON(data []byte) error {
	var st GraphState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("wisteria: parse graph document: %w", err)
	}
	g.LoadState(st)
	return nil
}

// LoadState replaces the graph's content with the given document. Nodes
// whose template key is no longer in the catalog are skipped with a warning;
// links that lost an endpoint (to a skipped node or a vanished pin) are
// dropped silently. For templates that allow custom pins, a serialized pin
// list longer than the template's wins so dynamically grown pins survive.
func (g *Graph) LoadState(st GraphState) {
	for _, n := range g.nodes {
		g.surface.DetachNode(n)
	}
	g.nodes = make(map[string]*Node)
	g.order = nil
	g.selected = make(map[string]struct{})
	g.wiring = newWiring(g)
	g.redrawQueue = nil
	g.state = interaction{}
	g.details.Clear()
	if st.ID != "" {
		g.docID = st.ID
	}

	for _, ns := range st.Nodes {
		tpl, ok := g.catalog.Get(ns.Key)
		if !ok {
			g.log.Warn("skipping node during load: unknown template key", "key", ns.Key, "node", ns.ID)
			continue
		}
		specs := tpl.Pins
		if tpl.CustomPins && len(ns.Pins) > len(tpl.Pins) {
			specs = make([]PinSpec, 0, len(ns.Pins))
			for _, ps := range ns.Pins {
				specs = append(specs, PinSpec{
					ID:        localPinID(ns.ID, ps.ID),
					Name:      ps.Name,
					Type:      ps.Type,
					Dir:       ps.Dir,
					Container: ps.Container,
					IsCustom:  ps.IsCustom,
				})
			}
		}

		n := newNode(ns.ID, ns.Key, tpl, specs, ns.X, ns.Y)
		bumpNodeIDCounter(ns.ID)
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)

		for _, ps := range ns.Pins {
			fullID := ns.ID + "-" + localPinID(ns.ID, ps.ID)
			p := n.FindPinByID(fullID)
			if p == nil {
				continue
			}
			if ps.Literal != nil {
				n.Literals[fullID] = ps.Literal
			}
		}
		n.view = g.surface.AttachNode(n)
	}

	for _, ls := range st.Links {
		start := g.FindPinByID(ls.StartPin)
		end := g.FindPinByID(ls.EndPin)
		if start == nil || end == nil {
			continue
		}
		id := ls.ID
		if id == "" {
			id = uuid.NewString()
		}
		l := &Link{ID: id, Start: start, End: end}
		g.wiring.links[l.ID] = l
		start.addLinkID(l.ID)
		end.addLinkID(l.ID)
		g.ScheduleWireRedraw(start.Node.ID)
		g.ScheduleWireRedraw(end.Node.ID)
	}
	g.compiler.MarkDirty()
}

// localPinID strips a node identifier prefix from a serialized pin
// identifier, accepting documents written with either local or full pin
// identifiers in the node pin lists.
func localPinID(nodeID, pinID string) string {
	return strings.TrimPrefix(pinID, nodeID+"-")
}
