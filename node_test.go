package wisteria

import "testing"

func TestNodeIDCounterBump(t *testing.T) {
	before := nodeIDCounter
	bumpNodeIDCounter("node-999999")
	if nodeIDCounter != 999999 {
		t.Fatalf("counter = %d, want 999999", nodeIDCounter)
	}
	bumpNodeIDCounter("node-5")
	if nodeIDCounter != 999999 {
		t.Errorf("counter lowered to %d by smaller id", nodeIDCounter)
	}
	bumpNodeIDCounter("garbage")
	if nodeIDCounter != 999999 {
		t.Errorf("counter changed to %d by malformed id", nodeIDCounter)
	}
	nodeIDCounter = before
}

func TestNodeSeedsInputLiterals(t *testing.T) {
	g, _, _, _ := newTestGraph(t)
	mul := mustAddNode(t, g, "Multiply", 0, 0)

	if got := mul.Literals[mul.ID+"-a"]; got != 1.0 {
		t.Errorf("literal for a = %v, want seeded default 1.0", got)
	}
	if _, ok := mul.Literals[mul.ID+"-product"]; ok {
		t.Error("output pin got a literal seeded")
	}
}

func TestNodePinCacheAfterSync(t *testing.T) {
	g, _, _, _ := newTestGraph(t)
	add := mustAddNode(t, g, "Add", 0, 0)

	tpl, _ := g.catalog.Get("Add")
	add.SyncWithTemplate(tpl, func(string, *Pin, *Pin) {})

	p := add.FindPinByID(add.ID + "-sum")
	if p == nil {
		t.Fatal("pin cache lost sum after resync")
	}
	if p != add.Pins[2] {
		t.Error("cache entry does not match rebuilt pin object")
	}
}

func TestSyncWithTemplateCarriesLinksAndRepoints(t *testing.T) {
	g, _, _, _ := newTestGraph(t)
	add := mustAddNode(t, g, "Add", 0, 0)
	mul := mustAddNode(t, g, "Multiply", 300, 0)
	l := connect(t, g, pin(t, add, "sum"), pin(t, mul, "a"))

	oldSum := pin(t, add, "sum")
	g.SyncNodeWithTemplate(add)
	newSum := pin(t, add, "sum")

	if newSum == oldSum {
		t.Fatal("resync did not rebuild pins")
	}
	if len(newSum.LinkIDs) != 1 || newSum.LinkIDs[0] != l.ID {
		t.Errorf("rebuilt pin LinkIDs = %v, want [%s]", newSum.LinkIDs, l.ID)
	}
	if l.Start != newSum {
		t.Error("link start still points at the discarded pin")
	}
}
