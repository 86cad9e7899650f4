package decross

import (
	"sort"

	"github.com/sugigraph/layout/pkg/graphutil"
	"github.com/sugigraph/layout/pkg/sugi"
)

func countLayerCrossings(sg *sugi.Graph, upper, lower int) int {
	return graphutil.CountCrossings(sg.LayerOrder(upper), sg.LayerOrder(lower), func(id string) []string {
		edges := sg.Children(id)
		targets := make([]string, len(edges))
		for i, e := range edges {
			targets[i] = e.To
		}
		return targets
	})
}

// TwoLayerSweep repeatedly reorders each layer against a fixed
// neighbor, alternating a downward pass (each layer reordered against
// the one above) and an upward pass (each layer reordered against the
// one below), for up to maxSweeps rounds or until a full round leaves
// every layer unchanged. Dummy nodes participate identically to real
// ones.
func TwoLayerSweep(sg *sugi.Graph, maxSweeps int, heuristic Heuristic) {
	layers := sg.Layers()
	if len(layers) < 2 || maxSweeps <= 0 {
		return
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		changed := false
		for i := 1; i < len(layers); i++ {
			if reorderLayer(sg, layers[i], layers[i-1], true, heuristic) {
				changed = true
			}
		}
		for i := len(layers) - 2; i >= 0; i-- {
			if reorderLayer(sg, layers[i], layers[i+1], false, heuristic) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

// reorderLayer reorders the nodes of layer moving using the positions
// of their neighbors in the already-fixed layer fixed. useParents
// selects which side of each node's edges point at fixed: true means
// fixed is the layer above (use parent edges), false means fixed is
// the layer below (use child edges). Reports whether the order
// changed.
func reorderLayer(sg *sugi.Graph, moving, fixed int, useParents bool, h Heuristic) bool {
	fixedPos := graphutil.PosMap(sg.LayerOrder(fixed))
	movingOrder := sg.LayerOrder(moving)

	type scored struct {
		id  string
		key float64
	}
	entries := make([]scored, len(movingOrder))
	for idx, id := range movingOrder {
		var positions []int
		var edges []*sugi.Edge
		if useParents {
			edges = sg.Parents(id)
		} else {
			edges = sg.Children(id)
		}
		for _, e := range edges {
			other := e.To
			if useParents {
				other = e.From
			}
			if pos, ok := fixedPos[other]; ok {
				for c := 0; c < e.Count; c++ {
					positions = append(positions, pos)
				}
			}
		}
		key := float64(idx)
		if len(positions) > 0 {
			switch h {
			case Median:
				key = medianOf(positions)
			default:
				key = meanOf(positions)
			}
		}
		entries[idx] = scored{id: id, key: key}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	changed := false
	newOrder := make([]string, len(entries))
	for i, e := range entries {
		newOrder[i] = e.id
		if movingOrder[i] != e.id {
			changed = true
		}
	}
	if changed {
		sg.SetLayerOrder(moving, newOrder)
	}
	return changed
}

func medianOf(positions []int) float64 {
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

func meanOf(positions []int) float64 {
	sum := 0
	for _, p := range positions {
		sum += p
	}
	return float64(sum) / float64(len(positions))
}
