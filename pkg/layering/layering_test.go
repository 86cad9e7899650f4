package layering_test

import (
	"testing"

	"github.com/sugigraph/layout/pkg/dag"
	"github.com/sugigraph/layout/pkg/layering"
	"github.com/sugigraph/layout/pkg/layouterr"
	"github.com/sugigraph/layout/pkg/solve"
)

func chain[N, E any](t *testing.T, ids []string) *dag.DAG[N, E] {
	t.Helper()
	g := dag.New[N, E]()
	var zeroN N
	var zeroE E
	for _, id := range ids {
		if err := g.AddNode(id, zeroN); err != nil {
			t.Fatalf("AddNode(%q): %v", id, err)
		}
	}
	for i := 0; i+1 < len(ids); i++ {
		if err := g.AddLink(ids[i], ids[i+1], zeroE, 1); err != nil {
			t.Fatalf("AddLink: %v", err)
		}
	}
	return g
}

func TestLongestPathTopDown(t *testing.T) {
	g := chain[int, int](t, []string{"a", "b", "c"})
	if err := layering.LongestPath(g, layering.TopDown); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, id := range []string{"a", "b", "c"} {
		n, _ := g.Node(id)
		if n.Layer != i {
			t.Errorf("layer(%s) = %d, want %d", id, n.Layer, i)
		}
	}
}

func TestLongestPathBottomUp(t *testing.T) {
	g := chain[int, int](t, []string{"a", "b", "c"})
	if err := layering.LongestPath(g, layering.BottomUp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, _ := g.Node("c")
	if c.Layer != 2 {
		t.Fatalf("layer(c) = %d, want 2 (max layer, sink anchored)", c.Layer)
	}
	a, _ := g.Node("a")
	if a.Layer != 0 {
		t.Fatalf("layer(a) = %d, want 0", a.Layer)
	}
}

func TestLongestPathDiamond(t *testing.T) {
	g := dag.New[int, int]()
	for _, id := range []string{"a", "b", "c", "d"} {
		_ = g.AddNode(id, 0)
	}
	_ = g.AddLink("a", "b", 0, 1)
	_ = g.AddLink("a", "c", 0, 1)
	_ = g.AddLink("b", "d", 0, 1)
	_ = g.AddLink("c", "d", 0, 1)

	if err := layering.LongestPath(g, layering.TopDown); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := g.Node("a")
	b, _ := g.Node("b")
	c, _ := g.Node("c")
	d, _ := g.Node("d")
	if a.Layer != 0 || b.Layer != 1 || c.Layer != 1 || d.Layer != 2 {
		t.Fatalf("layers a=%d b=%d c=%d d=%d, want 0,1,1,2", a.Layer, b.Layer, c.Layer, d.Layer)
	}
}

func TestSimplexMinimizesSpan(t *testing.T) {
	g := chain[int, int](t, []string{"a", "b", "c"})
	if err := layering.Simplex(g, solve.DefaultILPSolver{}, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := g.Node("a")
	b, _ := g.Node("b")
	c, _ := g.Node("c")
	if b.Layer-a.Layer != 1 || c.Layer-b.Layer != 1 {
		t.Fatalf("layers a=%d b=%d c=%d, want unit spans", a.Layer, b.Layer, c.Layer)
	}
}

func TestSimplexGroupConstraint(t *testing.T) {
	g := dag.New[int, int]()
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(id, 0)
	}
	_ = g.AddLink("a", "b", 0, 1)
	_ = g.AddLink("a", "c", 0, 1)

	group := map[string]string{"b": "same", "c": "same"}
	if err := layering.Simplex(g, solve.DefaultILPSolver{}, nil, group); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := g.Node("b")
	c, _ := g.Node("c")
	if b.Layer != c.Layer {
		t.Fatalf("layer(b)=%d layer(c)=%d, want equal (grouped)", b.Layer, c.Layer)
	}
}

func TestSimplexRankConstraint(t *testing.T) {
	g := dag.New[int, int]()
	for _, id := range []string{"a", "b"} {
		_ = g.AddNode(id, 0)
	}
	_ = g.AddLink("a", "b", 0, 1)

	rank := map[string]int{"a": 0, "b": 5}
	if err := layering.Simplex(g, solve.DefaultILPSolver{}, rank, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := g.Node("a")
	b, _ := g.Node("b")
	if b.Layer <= a.Layer {
		t.Fatalf("layer(a)=%d layer(b)=%d, want b strictly after a", a.Layer, b.Layer)
	}
}

// TestSimplexIllDefinedConstraints checks that a rank constraint forcing
// a strict order between two nodes, combined with a group constraint
// forcing those same two nodes onto the same layer, is reported as an
// infeasible LP rather than silently picking one constraint over the
// other.
func TestSimplexIllDefinedConstraints(t *testing.T) {
	g := dag.New[int, int]()
	for _, id := range []string{"a", "b"} {
		_ = g.AddNode(id, 0)
	}

	rank := map[string]int{"a": 0, "b": 1}
	group := map[string]string{"a": "same", "b": "same"}

	err := layering.Simplex(g, solve.DefaultILPSolver{}, rank, group)
	if err == nil {
		t.Fatal("expected an error for contradictory rank/group constraints, got nil")
	}
	if !layouterr.Is(err, layouterr.IllDefinedConstraints) {
		t.Fatalf("got error %v, want code %s", err, layouterr.IllDefinedConstraints)
	}
}
