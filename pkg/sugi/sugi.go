// Package sugi builds and manipulates the expanded layered graph
// (dummy nodes included) that crossing minimization and coordinate
// assignment operate on. Copying the resulting coordinates back into
// the caller's DAG is done by package layout.
package sugi

import (
	"fmt"
	"sort"

	"github.com/sugigraph/layout/pkg/dag"
	"github.com/sugigraph/layout/pkg/graphutil"
	"github.com/sugigraph/layout/pkg/layouterr"
)

// Kind distinguishes a sugi-node that wraps a user node from one that
// is an interior waypoint of a long edge.
type Kind int

const (
	// Real wraps a user node; its width/height are inherited from it.
	Real Kind = iota
	// Dummy is one interior waypoint of a multi-layer edge.
	Dummy
)

func (k Kind) String() string {
	if k == Real {
		return "real"
	}
	return "dummy"
}

// Node is one vertex of a sugi-graph. Exactly one of UserID/LinkID is
// meaningful, selected by Kind: a Real node's UserID names the DAG node
// it wraps; a Dummy node's LinkID names the original long link it is a
// waypoint of.
type Node struct {
	ID     string
	Kind   Kind
	UserID string // valid when Kind == Real
	LinkID LinkID // valid when Kind == Dummy
	Layer  int
	X, Y   float64
	Width  float64
	Height float64
}

// LinkID identifies the original user link a dummy chain realizes.
type LinkID struct {
	From, To string
}

// Edge is one edge of the sugi-graph; it always spans exactly one
// layer. Link names the original user link this edge helps realize
// (every edge belongs to exactly one original link, possibly via a
// chain of dummies).
type Edge struct {
	From, To string
	Link     LinkID
	Count    int
}

// Graph is the expanded layered graph: a sequence of layers, each an
// ordered sequence of sugi-nodes, built from a [dag.DAG] after
// layering. The sugi-graph exclusively owns its dummy nodes; real
// sugi-nodes only reference their user node by ID.
type Graph struct {
	nodes    map[string]*Node
	layers   map[int][]string // node IDs, in current left-to-right order
	order    []int            // sorted layer indices
	outgoing map[string][]*Edge
	incoming map[string][]*Edge
	chains   map[LinkID][]string // dummy node IDs for a long link, source-to-target order
}

func newGraph() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		layers:   make(map[int][]string),
		outgoing: make(map[string][]*Edge),
		incoming: make(map[string][]*Edge),
		chains:   make(map[LinkID][]string),
	}
}

// NodeSizer reports the (width, height) of a user node, identified by
// its DAG node ID. [Build] calls it once per node and keeps the result
// on the sugi-node.
type NodeSizer func(id string) (width, height float64)

// Build expands dag into a sugi-graph using each node's already
// assigned Layer. Every link u→v must have v.Layer > u.Layer (layering
// must have already run); links spanning more than one layer are
// subdivided into a chain of dummy nodes, one per intermediate layer.
//
// realSize and dummySize provide the width/height of real and dummy
// sugi-nodes respectively: realSize is called once per node, and
// dummySize at most once (only if some link needs dummies).
func Build[N, E any](g *dag.DAG[N, E], realSize NodeSizer, dummySize func() (float64, float64)) (*Graph, error) {
	sg := newGraph()

	for _, n := range g.Nodes() {
		w, h := realSize(n.ID)
		if w < 0 || h < 0 {
			return nil, layouterr.New(layouterr.InvalidConfig, "node %q has negative size (%v, %v)", n.ID, w, h)
		}
		sg.addNode(&Node{ID: n.ID, Kind: Real, UserID: n.ID, Layer: n.Layer, Width: w, Height: h})
	}

	dummySeq := 0
	var dw, dh float64
	dummySized := false
	for _, link := range g.Links() {
		src, _ := g.Node(link.From)
		dst, _ := g.Node(link.To)
		span := dst.Layer - src.Layer
		if span <= 0 {
			return nil, layouterr.New(layouterr.InvalidGraph, "link %s->%s does not strictly increase layer (%d -> %d)", link.From, link.To, src.Layer, dst.Layer)
		}
		lid := LinkID{From: link.From, To: link.To}

		if span == 1 {
			sg.addEdge(link.From, link.To, lid, link.Count)
			continue
		}

		if !dummySized {
			dw, dh = dummySize()
			dummySized = true
		}
		prevID := link.From
		chain := make([]string, 0, span-1)
		for layer := src.Layer + 1; layer < dst.Layer; layer++ {
			dummySeq++
			id := fmt.Sprintf("__dummy_%d", dummySeq)
			sg.addNode(&Node{ID: id, Kind: Dummy, LinkID: lid, Layer: layer, Width: dw, Height: dh})
			sg.addEdge(prevID, id, lid, link.Count)
			chain = append(chain, id)
			prevID = id
		}
		sg.addEdge(prevID, link.To, lid, link.Count)
		sg.chains[lid] = chain
	}

	return sg, nil
}

func (sg *Graph) addNode(n *Node) {
	sg.nodes[n.ID] = n
	if _, ok := sg.layers[n.Layer]; !ok {
		sg.order = append(sg.order, n.Layer)
		sortInts(sg.order)
	}
	sg.layers[n.Layer] = append(sg.layers[n.Layer], n.ID)
}

func (sg *Graph) addEdge(from, to string, link LinkID, count int) {
	e := &Edge{From: from, To: to, Link: link, Count: count}
	sg.outgoing[from] = append(sg.outgoing[from], e)
	sg.incoming[to] = append(sg.incoming[to], e)
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Node returns the sugi-node with the given ID.
func (sg *Graph) Node(id string) (*Node, bool) {
	n, ok := sg.nodes[id]
	return n, ok
}

// Layers returns the sorted list of layer indices present in the graph.
func (sg *Graph) Layers() []int { return sg.order }

// LayerOrder returns the current left-to-right node ID order for a
// layer. The returned slice is shared with the graph's internal state
// and must not be mutated directly; use [Graph.SetLayerOrder].
func (sg *Graph) LayerOrder(layer int) []string { return sg.layers[layer] }

// SetLayerOrder replaces the left-to-right order of nodes in layer with
// order, which must be a permutation of the layer's current node IDs.
// Used by decrossing operators.
func (sg *Graph) SetLayerOrder(layer int, order []string) {
	sg.layers[layer] = order
}

// Children returns the edges leaving id.
func (sg *Graph) Children(id string) []*Edge { return sg.outgoing[id] }

// Parents returns the edges entering id.
func (sg *Graph) Parents(id string) []*Edge { return sg.incoming[id] }

// Nodes returns every sugi-node in unspecified order.
func (sg *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(sg.nodes))
	for _, n := range sg.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// DummyChain returns the dummy node IDs inserted for the long link
// identified by lid, in source-to-target order. Returns nil for a link
// that spans exactly one layer (no dummies were needed).
func (sg *Graph) DummyChain(lid LinkID) []string { return sg.chains[lid] }

// Components partitions the sugi-graph into weakly connected
// components, returning each as a list of node IDs. Used by C9 to lay
// out each component's quadratic program independently.
func (sg *Graph) Components() [][]string {
	adj := make(map[string][]string, len(sg.nodes))
	for id := range sg.nodes {
		if _, ok := adj[id]; !ok {
			adj[id] = nil
		}
	}
	for from, edges := range sg.outgoing {
		for _, e := range edges {
			adj[from] = append(adj[from], e.To)
			adj[e.To] = append(adj[e.To], from)
		}
	}

	ids := make([]string, 0, len(sg.nodes))
	for id := range sg.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	visited := make(map[string]struct{}, len(sg.nodes))
	var components [][]string
	for _, id := range ids {
		if _, ok := visited[id]; ok {
			continue
		}
		reached := graphutil.Reachable(adj, id)
		comp := make([]string, 0, len(reached))
		for n := range reached {
			comp = append(comp, n)
			visited[n] = struct{}{}
		}
		sort.Strings(comp)
		components = append(components, comp)
	}
	return components
}
