// Package layering assigns each node of a DAG a non-negative integer
// layer such that every link goes from a lower to a higher layer. Two
// algorithms are provided: [LongestPath], a fast topological heuristic,
// and [Simplex], an integer program that minimizes total edge span.
package layering

import "github.com/sugigraph/layout/pkg/dag"

// Direction controls which end of the DAG a longest-path pass anchors:
// sources at layer 0, or sinks at the maximum layer.
type Direction int

const (
	// TopDown anchors every source node at layer 0.
	TopDown Direction = iota
	// BottomUp anchors every sink node at the maximum layer.
	BottomUp
)

// spanOf returns the minimum layer span a link with the given
// multiplicity must cross: 1 for a simple link, 2 for a multi-edge, so
// that parallel edges get visual room for their dummy chains.
func spanOf(count int) int {
	if count > 1 {
		return 2
	}
	return 1
}

// normalize shifts every layer so the minimum is 0, without changing
// any relative layer difference. Both layering algorithms may produce
// solutions offset from zero (the simplex LP has multiple optima that
// differ only by a uniform translation); normalizing keeps output
// deterministic and matches the spec's "sources at layer 0" invariant.
func normalize(layer map[string]int) {
	if len(layer) == 0 {
		return
	}
	min := 0
	first := true
	for _, l := range layer {
		if first || l < min {
			min = l
			first = false
		}
	}
	if min == 0 {
		return
	}
	for id, l := range layer {
		layer[id] = l - min
	}
}

func writeLayers[N, E any](g *dag.DAG[N, E], layer map[string]int) {
	normalize(layer)
	g.SetLayers(layer)
}
