package layering

import "github.com/sugigraph/layout/pkg/dag"

// LongestPath assigns layers via a topological (Kahn's algorithm)
// longest-path pass: layer(n) = max over parents p of layer(p) +
// span(p→n). In [TopDown] mode every source lands at layer 0; in
// [BottomUp] mode the pass runs from the sinks and the result is
// mirrored so every sink lands at the maximum layer. The result is a
// valid layering of minimal height; layer width is not optimized.
//
// g must be acyclic; a cyclic graph leaves nodes inside the cycle
// stuck at layer 0 since their in-degree (or out-degree, in BottomUp
// mode) never reaches zero. Callers should run [dag.DAG.Validate]
// first.
func LongestPath[N, E any](g *dag.DAG[N, E], direction Direction) error {
	nodes := g.Nodes()
	layer := make(map[string]int, len(nodes))
	remaining := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		layer[n.ID] = 0
	}

	if direction == TopDown {
		for _, n := range nodes {
			remaining[n.ID] = len(g.Parents(n.ID))
			if remaining[n.ID] == 0 {
				queue = append(queue, n.ID)
			}
		}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, link := range g.Children(cur) {
				if v := layer[cur] + spanOf(link.Count); v > layer[link.To] {
					layer[link.To] = v
				}
				remaining[link.To]--
				if remaining[link.To] == 0 {
					queue = append(queue, link.To)
				}
			}
		}
	} else {
		for _, n := range nodes {
			remaining[n.ID] = len(g.Children(n.ID))
			if remaining[n.ID] == 0 {
				queue = append(queue, n.ID)
			}
		}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, link := range g.Parents(cur) {
				if v := layer[cur] + spanOf(link.Count); v > layer[link.From] {
					layer[link.From] = v
				}
				remaining[link.From]--
				if remaining[link.From] == 0 {
					queue = append(queue, link.From)
				}
			}
		}
		maxLayer := 0
		for _, l := range layer {
			if l > maxLayer {
				maxLayer = l
			}
		}
		for id, l := range layer {
			layer[id] = maxLayer - l
		}
	}

	writeLayers(g, layer)
	return nil
}
