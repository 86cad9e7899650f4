package dag_test

import (
	"errors"
	"testing"

	"github.com/sugigraph/layout/pkg/dag"
)

func TestAddNodeErrors(t *testing.T) {
	g := dag.New[int, int]()
	if err := g.AddNode("", 0); !errors.Is(err, dag.ErrInvalidNodeID) {
		t.Fatalf("empty ID: got %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode("a", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddNode("a", 0); !errors.Is(err, dag.ErrDuplicateNodeID) {
		t.Fatalf("duplicate ID: got %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddLinkErrors(t *testing.T) {
	g := dag.New[int, int]()
	_ = g.AddNode("a", 0)
	_ = g.AddNode("b", 0)

	cases := []struct {
		name     string
		from, to string
		count    int
		want     error
	}{
		{"self-loop", "a", "a", 1, dag.ErrSelfLoop},
		{"unknown source", "x", "a", 1, dag.ErrUnknownSourceNode},
		{"unknown target", "a", "x", 1, dag.ErrUnknownTargetNode},
		{"zero count", "a", "b", 0, dag.ErrInvalidMultiplicity},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := g.AddLink(c.from, c.to, 0, c.count); !errors.Is(err, c.want) {
				t.Fatalf("got %v, want %v", err, c.want)
			}
		})
	}
}

func TestValidateCycle(t *testing.T) {
	g := dag.New[int, int]()
	_ = g.AddNode("a", 0)
	_ = g.AddNode("b", 0)
	_ = g.AddNode("c", 0)
	_ = g.AddLink("a", "b", 0, 1)
	_ = g.AddLink("b", "c", 0, 1)
	if err := g.Validate(); err != nil {
		t.Fatalf("acyclic graph: got %v, want nil", err)
	}

	_ = g.AddLink("c", "a", 0, 1)
	if err := g.Validate(); !errors.Is(err, dag.ErrGraphHasCycle) {
		t.Fatalf("cyclic graph: got %v, want ErrGraphHasCycle", err)
	}
}

func TestSourcesAndSinks(t *testing.T) {
	g := dag.New[int, int]()
	_ = g.AddNode("root", 0)
	_ = g.AddNode("mid", 0)
	_ = g.AddNode("leaf", 0)
	_ = g.AddLink("root", "mid", 0, 1)
	_ = g.AddLink("mid", "leaf", 0, 1)

	srcs := dag.NodeIDs(g.Sources())
	if len(srcs) != 1 || srcs[0] != "root" {
		t.Fatalf("Sources() = %v, want [root]", srcs)
	}
	sinks := dag.NodeIDs(g.Sinks())
	if len(sinks) != 1 || sinks[0] != "leaf" {
		t.Fatalf("Sinks() = %v, want [leaf]", sinks)
	}
}

func TestConnectedComponents(t *testing.T) {
	g := dag.New[int, int]()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		_ = g.AddNode(id, 0)
	}
	_ = g.AddLink("a", "b", 0, 1)
	_ = g.AddLink("c", "d", 0, 1)
	// e is isolated.

	comps := g.ConnectedComponents()
	if len(comps) != 3 {
		t.Fatalf("got %d components, want 3: %v", len(comps), comps)
	}
}

func TestMultiplicityPreserved(t *testing.T) {
	g := dag.New[int, int]()
	_ = g.AddNode("a", 0)
	_ = g.AddNode("b", 0)
	_ = g.AddLink("a", "b", 7, 3)

	links := g.Children("a")
	if len(links) != 1 || links[0].Count != 3 || links[0].Data != 7 {
		t.Fatalf("Children(a) = %+v, want one link with Count=3 Data=7", links)
	}
}

func TestSetLayersAndNodesInLayer(t *testing.T) {
	g := dag.New[int, int]()
	_ = g.AddNode("a", 0)
	_ = g.AddNode("b", 0)
	g.SetLayers(map[string]int{"a": 0, "b": 2})

	if got := dag.NodeIDs(g.NodesInLayer(2)); len(got) != 1 || got[0] != "b" {
		t.Fatalf("NodesInLayer(2) = %v, want [b]", got)
	}
	if got := g.MaxLayer(); got != 2 {
		t.Fatalf("MaxLayer() = %d, want 2", got)
	}
}
