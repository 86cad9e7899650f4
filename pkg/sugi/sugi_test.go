package sugi_test

import (
	"testing"

	"github.com/sugigraph/layout/pkg/dag"
	"github.com/sugigraph/layout/pkg/sugi"
)

func chain3(t *testing.T) *dag.DAG[int, int] {
	t.Helper()
	g := dag.New[int, int]()
	_ = g.AddNode("a", 0)
	_ = g.AddNode("b", 0)
	_ = g.AddNode("c", 0)
	_ = g.AddLink("a", "b", 0, 1)
	_ = g.AddLink("b", "c", 0, 1)
	g.SetLayers(map[string]int{"a": 0, "b": 1, "c": 2})
	return g
}

func unitSize(string) (float64, float64) { return 1, 1 }
func zeroSize() (float64, float64)        { return 0, 0 }

func TestBuildDirectEdges(t *testing.T) {
	g := chain3(t)
	sg, err := sugi.Build(g, unitSize, zeroSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sg.Nodes()) != 3 {
		t.Fatalf("got %d sugi-nodes, want 3 (no dummies expected)", len(sg.Nodes()))
	}
	for _, n := range sg.Nodes() {
		if n.Kind != sugi.Real {
			t.Errorf("node %q kind = %v, want Real", n.ID, n.Kind)
		}
	}
}

func TestBuildInsertsDummiesForLongEdge(t *testing.T) {
	g := dag.New[int, int]()
	_ = g.AddNode("a", 0)
	_ = g.AddNode("b", 0)
	_ = g.AddLink("a", "b", 0, 2)
	g.SetLayers(map[string]int{"a": 0, "b": 2})

	sg, err := sugi.Build(g, unitSize, zeroSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chain := sg.DummyChain(sugi.LinkID{From: "a", To: "b"})
	if len(chain) != 1 {
		t.Fatalf("got %d dummies, want 1", len(chain))
	}
	dummy, ok := sg.Node(chain[0])
	if !ok || dummy.Kind != sugi.Dummy {
		t.Fatalf("expected a dummy node at %v", chain)
	}
	if dummy.Layer != 1 {
		t.Fatalf("dummy layer = %d, want 1", dummy.Layer)
	}

	if got := len(sg.Children("a")); got != 1 {
		t.Fatalf("a has %d outgoing edges, want 1 (to the dummy)", got)
	}
	if got := sg.Children("a")[0].To; got != chain[0] {
		t.Fatalf("a's edge goes to %q, want %q", got, chain[0])
	}
}

func TestBuildRejectsNonIncreasingLayer(t *testing.T) {
	g := dag.New[int, int]()
	_ = g.AddNode("a", 0)
	_ = g.AddNode("b", 0)
	_ = g.AddLink("a", "b", 0, 1)
	g.SetLayers(map[string]int{"a": 1, "b": 1})

	if _, err := sugi.Build(g, unitSize, zeroSize); err == nil {
		t.Fatal("expected an error for a same-layer link")
	}
}

func TestComponents(t *testing.T) {
	g := dag.New[int, int]()
	_ = g.AddNode("a", 0)
	_ = g.AddNode("b", 0)
	_ = g.AddNode("c", 0)
	_ = g.AddNode("d", 0)
	_ = g.AddLink("a", "b", 0, 1)
	_ = g.AddLink("c", "d", 0, 1)
	g.SetLayers(map[string]int{"a": 0, "b": 1, "c": 0, "d": 1})

	sg, err := sugi.Build(g, unitSize, zeroSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(sg.Components()); got != 2 {
		t.Fatalf("got %d components, want 2", got)
	}
}

func TestSetLayerOrder(t *testing.T) {
	g := chain3(t)
	sg, err := sugi.Build(g, unitSize, zeroSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sg.SetLayerOrder(1, []string{"b"})
	if got := sg.LayerOrder(1); len(got) != 1 || got[0] != "b" {
		t.Fatalf("LayerOrder(1) = %v", got)
	}
}
