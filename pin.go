package wisteria

// Pin is a typed, directional connection point owned by exactly one node.
//
// Pins never own links. They hold only link identifiers; the link objects
// themselves live in the Wiring arena. This keeps the ownership graph
// acyclic while preserving O(1) lookup in both directions.
type Pin struct {
	// FullID is unique across the graph, scoped as "<nodeID>-<localID>".
	FullID string
	// LocalID is the template-scoped identifier, unique within the node.
	LocalID string
	Name    string

	Type      PinType
	Dir       PinDir
	Container ContainerKind

	// Default is the template-supplied literal used when the pin is
	// unconnected and no literal has been edited.
	Default any

	// LinkIDs lists the links this pin participates in, in creation order.
	LinkIDs []string

	// IsCustom marks dynamically added pins (e.g. parameters grown onto an
	// event node) that are not part of the node's template.
	IsCustom bool

	// Node is the owning node.
	Node *Node
}

// newPin builds a pin for owner from a template pin spec.
func newPin(owner *Node, spec PinSpec) *Pin {
	return &Pin{
		FullID:    owner.ID + "-" + spec.ID,
		LocalID:   spec.ID,
		Name:      spec.Name,
		Type:      spec.Type,
		Dir:       spec.Dir,
		Container: spec.Container,
		Default:   spec.Default,
		IsCustom:  spec.IsCustom,
		Node:      owner,
	}
}

// MaxLinks returns the pin's link capacity: 1 for non-exec input pins,
// -1 (unbounded) for output pins and exec pins.
func (p *Pin) MaxLinks() int {
	if p.Dir == PinIn && p.Type != PinExec {
		return 1
	}
	return -1
}

// IsConnected reports whether the pin participates in at least one link.
func (p *Pin) IsConnected() bool {
	return len(p.LinkIDs) > 0
}

// Literal returns the node-held literal value for this pin, falling back to
// the template default when no literal has been set.
func (p *Pin) Literal() any {
	if p.Node != nil {
		if v, ok := p.Node.Literals[p.FullID]; ok {
			return v
		}
	}
	return p.Default
}

func (p *Pin) addLinkID(id string) {
	p.LinkIDs = append(p.LinkIDs, id)
}

// removeLinkID removes id from the pin's link list.
// Uses copy+truncate to avoid retaining a dangling entry in the backing array.
func (p *Pin) removeLinkID(id string) {
	for i, lid := range p.LinkIDs {
		if lid == id {
			copy(p.LinkIDs[i:], p.LinkIDs[i+1:])
			p.LinkIDs[len(p.LinkIDs)-1] = ""
			p.LinkIDs = p.LinkIDs[:len(p.LinkIDs)-1]
			return
		}
	}
}
