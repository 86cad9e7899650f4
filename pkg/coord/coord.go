// Package coord assigns horizontal coordinates to the nodes of a
// sugi-graph once layering and decrossing have fixed each node's layer
// and within-layer order. Two families are provided: [Center]/[Greedy],
// simple per-layer placement rules, and [Quadratic], which minimizes a
// weighted sum of edge-straightness and waypoint-curvature penalties
// subject to per-layer non-overlap.
package coord

import (
	"math"

	"github.com/sugigraph/layout/pkg/layouterr"
	"github.com/sugigraph/layout/pkg/sugi"
)

// VertWeakFunc reports the vertical-edge-straightness penalty weight
// for a sugi-link whose source is a real node.
type VertWeakFunc func(from, to string) float64

// VertStrongFunc reports the vertical-edge-straightness penalty weight
// for a sugi-link whose source is a dummy waypoint of link.
type VertStrongFunc func(link sugi.LinkID) float64

// NodeCurveFunc reports the curvature penalty weight at a real
// waypoint node.
type NodeCurveFunc func(id string) float64

// LinkCurveFunc reports the curvature penalty weight at a dummy
// waypoint of link.
type LinkCurveFunc func(link sugi.LinkID) float64

// Weights bundles the quadratic coordinate assigner's penalty
// accessors and the between-component spread weight. [Quadratic] calls
// VertWeak once per sugi-edge leaving a real node, VertStrong once per
// sugi-edge leaving a dummy, NodeCurve once per real node that has both
// parents and children, and LinkCurve once per dummy, so a per-link
// accessor is called once for each dummy of that link. Results are not
// cached; each accessor must return the same value for the same input
// throughout one layout call.
type Weights struct {
	VertWeak   VertWeakFunc
	VertStrong VertStrongFunc
	NodeCurve  NodeCurveFunc
	LinkCurve  LinkCurveFunc
	// Component scales the gap inserted between independently laid
	// out components; zero packs them edge to edge.
	Component float64
}

// Center lays out each layer independently, left-to-right, separating
// each node from its neighbor by half the sum of their widths, then
// centers every layer around the widest layer's horizontal span. It
// fails with [layouterr.ZeroWidth] if no node in the graph has
// positive width.
func Center(sg *sugi.Graph) (float64, error) {
	return placeLayers(sg, false)
}

// Greedy performs the same per-layer placement as [Center], then one
// additional pass that pulls each node toward the mean position of its
// children in the following layer, clamped so it never overlaps its
// immediate neighbor within its own layer.
func Greedy(sg *sugi.Graph) (float64, error) {
	return placeLayers(sg, true)
}

func placeLayers(sg *sugi.Graph, greedyPass bool) (float64, error) {
	layers := sg.Layers()
	if len(layers) == 0 {
		return 0, nil
	}

	anyPositive := false
	for _, l := range layers {
		for _, id := range sg.LayerOrder(l) {
			if n, ok := sg.Node(id); ok && n.Width > 0 {
				anyPositive = true
			}
		}
	}
	if !anyPositive {
		return 0, layouterr.New(layouterr.ZeroWidth, "no node in the graph has positive width")
	}

	layerSpan := make(map[int]float64, len(layers))
	maxSpan := 0.0

	for _, l := range layers {
		order := sg.LayerOrder(l)
		if len(order) == 0 {
			continue
		}
		x := 0.0
		for i, id := range order {
			n, _ := sg.Node(id)
			if i == 0 {
				x = n.Width / 2
			} else {
				prev, _ := sg.Node(order[i-1])
				x += prev.Width/2 + n.Width/2
			}
			n.X = x
		}
		last, _ := sg.Node(order[len(order)-1])
		span := last.X + last.Width/2
		layerSpan[l] = span
		if span > maxSpan {
			maxSpan = span
		}
	}

	for _, l := range layers {
		order := sg.LayerOrder(l)
		if len(order) == 0 {
			continue
		}
		offset := (maxSpan - layerSpan[l]) / 2
		for _, id := range order {
			n, _ := sg.Node(id)
			n.X += offset
		}
	}

	if greedyPass {
		pullTowardChildren(sg, layers)
	}

	return maxSpan, nil
}

func pullTowardChildren(sg *sugi.Graph, layers []int) {
	for _, l := range layers {
		order := sg.LayerOrder(l)
		for i, id := range order {
			n, _ := sg.Node(id)
			children := sg.Children(id)
			if len(children) == 0 {
				continue
			}
			var sum float64
			for _, e := range children {
				child, _ := sg.Node(e.To)
				sum += child.X
			}
			target := sum / float64(len(children))

			lo := math.Inf(-1)
			if i > 0 {
				prev, _ := sg.Node(order[i-1])
				lo = prev.X + prev.Width/2 + n.Width/2
			}
			hi := math.Inf(1)
			if i < len(order)-1 {
				next, _ := sg.Node(order[i+1])
				hi = next.X - next.Width/2 - n.Width/2
			}
			n.X = math.Max(lo, math.Min(hi, target))
		}
	}
}
