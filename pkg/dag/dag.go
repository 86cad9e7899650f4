package dag

import (
	"cmp"
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddLink] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddLink] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [DAG.AddLink] when From == To.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrInvalidMultiplicity is returned by [DAG.AddLink] when count < 1.
	ErrInvalidMultiplicity = errors.New("link multiplicity must be >= 1")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is
	// detected. Cycle detection uses depth-first search with
	// white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Node is a vertex of a [DAG] carrying a user payload of type N.
//
// Layer, X, and Y are computed fields populated by a layout call; they
// are zero-valued until a layering operator has actually assigned
// [Node.Layer]. The zero value of Node is not meaningful on its own —
// nodes are created via [DAG.AddNode].
type Node[N any] struct {
	ID   string
	Data N

	// Layer is the non-negative integer layer assigned by layering.
	Layer int
	// X, Y are the coordinates assigned by coordinate assignment.
	X, Y float64
}

// Link is a directed, ordered connection between two nodes carrying a
// user payload of type E and a multiplicity (the number of parallel
// edges the link represents). Count must be >= 1.
//
// Points is populated after a layout call for any link whose endpoints
// end up more than one layer apart: it holds the full polyline from
// source through every intermediate dummy waypoint to target, inclusive
// of both endpoints.
type Link[E any] struct {
	From, To string
	Data     E
	Count    int

	Points []Point
}

// Point is a 2-D coordinate used for node positions and link polylines.
type Point struct{ X, Y float64 }

// DAG is a directed acyclic graph whose nodes carry payload N and whose
// links carry payload E.
//
// The zero value is not usable — use [New] to construct a DAG. DAG is
// not safe for concurrent use without external synchronization.
type DAG[N, E any] struct {
	nodes    map[string]*Node[N]
	order    []string // insertion order, for deterministic iteration
	links    []*Link[E]
	outgoing map[string][]*Link[E]
	incoming map[string][]*Link[E]
	layers   map[int][]*Node[N]
}

// New creates an empty DAG.
func New[N, E any]() *DAG[N, E] {
	return &DAG[N, E]{
		nodes:    make(map[string]*Node[N]),
		outgoing: make(map[string][]*Link[E]),
		incoming: make(map[string][]*Link[E]),
		layers:   make(map[int][]*Node[N]),
	}
}

// AddNode adds a node with the given ID and payload to the graph.
// Returns [ErrInvalidNodeID] if id is empty, or [ErrDuplicateNodeID] if a
// node with that ID already exists.
func (d *DAG[N, E]) AddNode(id string, data N) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[id]; exists {
		return ErrDuplicateNodeID
	}
	n := &Node[N]{ID: id, Data: data}
	d.nodes[id] = n
	d.order = append(d.order, id)
	d.layers[0] = append(d.layers[0], n)
	return nil
}

// AddLink adds a directed link from → to with the given payload and
// multiplicity (count). Returns [ErrUnknownSourceNode] /
// [ErrUnknownTargetNode] if either endpoint doesn't exist,
// [ErrSelfLoop] if from == to, or [ErrInvalidMultiplicity] if count < 1.
func (d *DAG[N, E]) AddLink(from, to string, data E, count int) error {
	if from == to {
		return ErrSelfLoop
	}
	if _, ok := d.nodes[from]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[to]; !ok {
		return ErrUnknownTargetNode
	}
	if count < 1 {
		return ErrInvalidMultiplicity
	}
	l := &Link[E]{From: from, To: to, Data: data, Count: count}
	d.links = append(d.links, l)
	d.outgoing[from] = append(d.outgoing[from], l)
	d.incoming[to] = append(d.incoming[to], l)
	return nil
}

// SetLayers updates the layer assignment of every named node and
// rebuilds the layer index used by [DAG.NodesInLayer]. Nodes not present
// in layerOf retain their current layer. This is O(N) in the total node
// count.
func (d *DAG[N, E]) SetLayers(layerOf map[string]int) {
	d.layers = make(map[int][]*Node[N])
	for _, id := range d.order {
		n := d.nodes[id]
		if layer, ok := layerOf[id]; ok {
			n.Layer = layer
		}
		d.layers[n.Layer] = append(d.layers[n.Layer], n)
	}
}

// Node returns the node with the given ID and true, or nil and false.
func (d *DAG[N, E]) Node(id string) (*Node[N], bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (d *DAG[N, E]) Nodes() []*Node[N] {
	out := make([]*Node[N], 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.nodes[id])
	}
	return out
}

// Links returns all links in insertion order. Mutating a returned
// *Link's Points field affects the graph since the pointers are shared.
func (d *DAG[N, E]) Links() []*Link[E] { return slices.Clone(d.links) }

// NodeCount returns the number of nodes.
func (d *DAG[N, E]) NodeCount() int { return len(d.nodes) }

// LinkCount returns the number of links.
func (d *DAG[N, E]) LinkCount() int { return len(d.links) }

// Children returns the outgoing links of the node with the given ID, in
// insertion order. Returns nil if the node has no children or doesn't
// exist.
func (d *DAG[N, E]) Children(id string) []*Link[E] { return d.outgoing[id] }

// Parents returns the incoming links of the node with the given ID, in
// insertion order. Returns nil if the node has no parents or doesn't
// exist.
func (d *DAG[N, E]) Parents(id string) []*Link[E] { return d.incoming[id] }

// ChildIDs returns the distinct target node IDs of the node's outgoing
// links, in first-seen order.
func (d *DAG[N, E]) ChildIDs(id string) []string { return linkTargets(d.outgoing[id], true) }

// ParentIDs returns the distinct source node IDs of the node's incoming
// links, in first-seen order.
func (d *DAG[N, E]) ParentIDs(id string) []string { return linkTargets(d.incoming[id], false) }

func linkTargets[E any](links []*Link[E], outgoing bool) []string {
	if len(links) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, len(links))
	for _, l := range links {
		id := l.To
		if !outgoing {
			id = l.From
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// NodesInLayer returns the nodes assigned to the given layer, in
// insertion order. Returns nil if the layer is empty.
func (d *DAG[N, E]) NodesInLayer(layer int) []*Node[N] { return d.layers[layer] }

// LayerIDs returns all non-empty layer indices in ascending order.
func (d *DAG[N, E]) LayerIDs() []int {
	ids := make([]int, 0, len(d.layers))
	for l := range d.layers {
		ids = append(ids, l)
	}
	slices.Sort(ids)
	return ids
}

// MaxLayer returns the highest layer index, or 0 for an empty graph.
func (d *DAG[N, E]) MaxLayer() int {
	ids := d.LayerIDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}

// Sources returns nodes with no incoming links, in insertion order.
func (d *DAG[N, E]) Sources() []*Node[N] {
	var out []*Node[N]
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			out = append(out, d.nodes[id])
		}
	}
	return out
}

// Sinks returns nodes with no outgoing links, in insertion order.
func (d *DAG[N, E]) Sinks() []*Node[N] {
	var out []*Node[N]
	for _, id := range d.order {
		if len(d.outgoing[id]) == 0 {
			out = append(out, d.nodes[id])
		}
	}
	return out
}

// Validate checks that the graph is acyclic. It detects cycles using
// depth-first search with white/gray/black coloring and returns
// [ErrGraphHasCycle] on the first one found. Self-loops and dangling
// link endpoints cannot occur through [DAG.AddLink]'s own checks, so
// this is the remaining structural invariant to verify before layout.
func (d *DAG[N, E]) Validate() error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(d.nodes))

	var hasCycle bool
	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, l := range d.outgoing[id] {
			if hasCycle {
				return
			}
			switch color[l.To] {
			case white:
				dfs(l.To)
			case gray:
				hasCycle = true
			}
		}
		color[id] = black
	}

	for _, id := range d.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// WalkPreorder visits every node in depth-first pre-order (a node before
// its children), returning the visited IDs. Sources are visited first,
// in insertion order; every node is visited exactly once even if
// reachable via multiple paths, and nodes unreachable from any source
// (possible only via a cycle, which [DAG.Validate] rejects) are still
// visited by the trailing sweep over insertion order.
func (d *DAG[N, E]) WalkPreorder() []string {
	visited := make(map[string]struct{}, len(d.nodes))
	var order []string
	var dfs func(id string)
	dfs = func(id string) {
		if _, ok := visited[id]; ok {
			return
		}
		visited[id] = struct{}{}
		order = append(order, id)
		for _, id2 := range d.ChildIDs(id) {
			dfs(id2)
		}
	}
	for _, src := range d.Sources() {
		dfs(src.ID)
	}
	for _, id := range d.order {
		dfs(id)
	}
	return order
}

// WalkPostorder visits every node in depth-first post-order (a node
// after its children), returning the visited IDs.
func (d *DAG[N, E]) WalkPostorder() []string {
	visited := make(map[string]struct{}, len(d.nodes))
	var order []string
	var dfs func(id string)
	dfs = func(id string) {
		if _, ok := visited[id]; ok {
			return
		}
		visited[id] = struct{}{}
		for _, id2 := range d.ChildIDs(id) {
			dfs(id2)
		}
		order = append(order, id)
	}
	for _, src := range d.Sources() {
		dfs(src.ID)
	}
	for _, id := range d.order {
		dfs(id)
	}
	return order
}

// WalkBreadthFirst visits every node in breadth-first order starting
// from the sources, returning the visited IDs. Any node not reachable
// from a source (possible only via a cycle, which [DAG.Validate]
// rejects) is picked up as a straggler, in insertion order, once the
// reachable frontier is exhausted.
func (d *DAG[N, E]) WalkBreadthFirst() []string {
	visited := make(map[string]struct{}, len(d.nodes))
	var order []string
	var queue []string
	enqueue := func(id string) {
		if _, ok := visited[id]; ok {
			return
		}
		visited[id] = struct{}{}
		queue = append(queue, id)
	}
	for _, src := range d.Sources() {
		enqueue(src.ID)
	}
	for i := 0; ; {
		for ; i < len(queue); i++ {
			id := queue[i]
			order = append(order, id)
			for _, child := range d.ChildIDs(id) {
				enqueue(child)
			}
		}
		added := false
		for _, id := range d.order {
			if _, ok := visited[id]; !ok {
				enqueue(id)
				added = true
			}
		}
		if !added {
			break
		}
	}
	return order
}

// ConnectedComponents partitions the graph's nodes into weakly connected
// components (treating links as undirected), returning one slice of
// sorted node IDs per component, components in first-seen order.
// Isolated nodes form their own singleton component.
func (d *DAG[N, E]) ConnectedComponents() [][]string {
	visited := make(map[string]struct{}, len(d.nodes))
	var components [][]string

	for _, id := range d.order {
		if _, ok := visited[id]; ok {
			continue
		}
		var comp []string
		queue := []string{id}
		visited[id] = struct{}{}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			neighbors := append(slices.Clone(d.ChildIDs(cur)), d.ParentIDs(cur)...)
			for _, nb := range neighbors {
				if _, ok := visited[nb]; ok {
					continue
				}
				visited[nb] = struct{}{}
				queue = append(queue, nb)
			}
		}
		slices.SortFunc(comp, func(a, b string) int { return cmp.Compare(a, b) })
		components = append(components, comp)
	}
	return components
}

// PosMap creates a position lookup map from a slice of node IDs: each ID
// maps to its index in the slice. Used to turn an ordering into fast
// position lookups for crossing calculations.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node in a slice, preserving order.
func NodeIDs[N any](nodes []*Node[N]) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
