// Package decross reorders the nodes within each layer of a sugi-graph
// to reduce edge crossings between adjacent layers. Two algorithms are
// provided: [TwoLayerSweep], an iterative median/weighted-mean
// heuristic, and [Optimal], an exact integer program over pairwise
// orderings.
package decross

import "github.com/sugigraph/layout/pkg/sugi"

// Heuristic selects the neighbor-position aggregation used by
// [TwoLayerSweep] to rank nodes in the layer being reordered.
type Heuristic int

const (
	// Median sorts by the median position of each node's neighbors in
	// the fixed layer.
	Median Heuristic = iota
	// WeightedMean sorts by the mean position of each node's
	// neighbors in the fixed layer, counting parallel edges once per
	// unit of multiplicity.
	WeightedMean
)

// Gate bounds the number of pairwise ordering variables [Optimal] will
// build before refusing an input as too large (spec §4.7).
type Gate int

const (
	// Small allows at most 400 ordering variables.
	Small Gate = iota
	// Medium allows at most 1200 ordering variables.
	Medium
	// Large disables the size gate entirely.
	Large
)

func (g Gate) limit() (limit int, bounded bool) {
	switch g {
	case Small:
		return 400, true
	case Medium:
		return 1200, true
	default:
		return 0, false
	}
}

// CountCrossings returns the total number of edge crossings in the
// sugi-graph's current layer orderings, summed over every adjacent
// layer pair.
func CountCrossings(sg *sugi.Graph) int {
	layers := sg.Layers()
	total := 0
	for i := 0; i+1 < len(layers); i++ {
		total += countLayerCrossings(sg, layers[i], layers[i+1])
	}
	return total
}
