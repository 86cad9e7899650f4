// Package layout orchestrates the full layered-layout pipeline —
// layering, sugi-graph construction, y-assignment, decrossing,
// x-assignment, verification, optional scaling, and write-back — over
// a [dag.DAG] of arbitrary node and link payload types.
package layout

import (
	"context"
	"time"

	"github.com/sugigraph/layout/pkg/coord"
	"github.com/sugigraph/layout/pkg/dag"
	"github.com/sugigraph/layout/pkg/decross"
	"github.com/sugigraph/layout/pkg/layering"
	"github.com/sugigraph/layout/pkg/layouterr"
	"github.com/sugigraph/layout/pkg/observability"
	"github.com/sugigraph/layout/pkg/sugi"
)

// Result is the outcome of a successful [Layout] call.
type Result struct {
	Width, Height float64
}

const overlapTolerance = 1e-6

// Layout runs the full pipeline over g using cfg, mutating every
// node's Layer/X/Y and every multi-layer link's Points in place.
func Layout[N, E any](ctx context.Context, g *dag.DAG[N, E], cfg Config) (Result, error) {
	hooks := observability.Layout()

	if err := runLayering(ctx, g, cfg, hooks); err != nil {
		return Result{}, err
	}

	nodeSize, dummySize := cfg.nodeSize, cfg.dummySize
	var accessorErr error
	if cfg.strictAccessors {
		nodeSize = verifyConstSize("nodeSize", nodeSize, &accessorErr)
		dummySize = verifyConstDummySize(dummySize, &accessorErr)
	}

	sg, err := sugi.Build(g, sugi.NodeSizer(nodeSize), dummySize)
	if err != nil {
		return Result{}, err
	}
	if accessorErr != nil {
		return Result{}, accessorErr
	}

	totalHeight, err := assignY(sg)
	if err != nil {
		return Result{}, err
	}

	if err := runDecross(ctx, sg, cfg, hooks); err != nil {
		return Result{}, err
	}

	totalWidth, err := runCoord(ctx, sg, cfg, hooks, totalHeight)
	if err != nil {
		return Result{}, err
	}

	if err := verifyNoOverlap(sg); err != nil {
		return Result{}, err
	}

	scaleX, scaleY := 1.0, 1.0
	width, height := totalWidth, totalHeight
	if cfg.hasTarget {
		if totalWidth > 0 {
			scaleX = cfg.targetWidth / totalWidth
		}
		if totalHeight > 0 {
			scaleY = cfg.targetHeight / totalHeight
		}
		width, height = cfg.targetWidth, cfg.targetHeight
	}

	writeBack(g, sg, scaleX, scaleY)

	return Result{Width: width, Height: height}, nil
}

func runLayering[N, E any](ctx context.Context, g *dag.DAG[N, E], cfg Config, hooks observability.LayoutHooks) error {
	start := time.Now()
	hooks.OnLayeringStart(ctx, g.NodeCount(), g.LinkCount())
	l := cfg.logOrDiscard()

	var err error
	switch cfg.layering {
	case LongestPathLayering:
		direction := layering.TopDown
		if !cfg.topDown {
			direction = layering.BottomUp
		}
		err = layering.LongestPath(g, direction)
	default:
		err = layering.Simplex(g, cfg.ilpSolver, cfg.rank, cfg.group)
	}

	elapsed := time.Since(start)
	hooks.OnLayeringComplete(ctx, len(g.LayerIDs()), elapsed, err)
	if err != nil {
		l.Debug("layering failed", "elapsed", elapsed, "err", err)
	} else {
		l.Debug("layering complete", "elapsed", elapsed, "layers", len(g.LayerIDs()))
	}
	return err
}

func runDecross(ctx context.Context, sg *sugi.Graph, cfg Config, hooks observability.LayoutHooks) error {
	start := time.Now()
	hooks.OnDecrossStart(ctx, len(sg.Layers()))
	l := cfg.logOrDiscard()

	var err error
	switch cfg.decross {
	case OptimalDecrossAlgo:
		err = decross.Optimal(sg, cfg.ilpSolver, cfg.gate)
	default:
		decross.TwoLayerSweep(sg, cfg.sweeps, cfg.heuristic)
	}

	elapsed := time.Since(start)
	crossings := decross.CountCrossings(sg)
	hooks.OnDecrossComplete(ctx, crossings, elapsed, err)
	if err != nil {
		l.Debug("decrossing failed", "elapsed", elapsed, "err", err)
	} else {
		l.Debug("decrossing complete", "elapsed", elapsed, "crossings", crossings)
	}
	return err
}

func runCoord(ctx context.Context, sg *sugi.Graph, cfg Config, hooks observability.LayoutHooks, totalHeight float64) (float64, error) {
	start := time.Now()
	hooks.OnCoordStart(ctx, len(sg.Nodes()))
	l := cfg.logOrDiscard()

	var width float64
	var err error
	switch cfg.coord {
	case CenterCoord:
		width, err = coord.Center(sg)
	case GreedyCoord:
		width, err = coord.Greedy(sg)
	default:
		vertWeak, vertStrong := cfg.vertWeak, cfg.vertStrong
		nodeCurve, linkCurve := cfg.nodeCurve, cfg.linkCurve
		var accessorErr error
		if cfg.strictAccessors {
			vertWeak = verifyConstPair("vertWeak", vertWeak, &accessorErr)
			vertStrong = verifyConst("vertStrong", vertStrong, &accessorErr)
			nodeCurve = verifyConst("nodeCurve", nodeCurve, &accessorErr)
			linkCurve = verifyConst("linkCurve", linkCurve, &accessorErr)
		}
		w := coord.Weights{
			VertWeak:   vertWeak,
			VertStrong: vertStrong,
			NodeCurve:  nodeCurve,
			LinkCurve:  linkCurve,
			Component:  cfg.component,
		}
		width, err = coord.Quadratic(sg, cfg.qpSolver, w)
		if err == nil && accessorErr != nil {
			err = accessorErr
		}
	}

	height := 0.0
	if err == nil {
		height = totalHeight
	}
	elapsed := time.Since(start)
	hooks.OnCoordComplete(ctx, width, height, elapsed, err)
	if err != nil {
		l.Debug("coordinate assignment failed", "elapsed", elapsed, "err", err)
	} else {
		l.Debug("coordinate assignment complete", "elapsed", elapsed, "width", width)
	}
	return width, err
}

// assignY sets every sugi-node's Y to its layer's vertical midline (the
// cumulative height of the layers above it plus half its own layer's
// height), and returns the total height of the graph.
func assignY(sg *sugi.Graph) (float64, error) {
	layers := sg.Layers()
	y := 0.0
	for _, l := range layers {
		order := sg.LayerOrder(l)
		maxH := 0.0
		for _, id := range order {
			n, _ := sg.Node(id)
			if n.Height > maxH {
				maxH = n.Height
			}
		}
		mid := y + maxH/2
		for _, id := range order {
			n, _ := sg.Node(id)
			n.Y = mid
		}
		y += maxH
	}
	if y <= 0 {
		return 0, layouterr.New(layouterr.ZeroHeight, "total layout height is zero: no layer has a node with positive height")
	}
	return y, nil
}

func verifyNoOverlap(sg *sugi.Graph) error {
	for _, l := range sg.Layers() {
		order := sg.LayerOrder(l)
		for i := 0; i+1 < len(order); i++ {
			p, _ := sg.Node(order[i])
			q, _ := sg.Node(order[i+1])
			if p.X+p.Width/2 > q.X-q.Width/2+overlapTolerance {
				return layouterr.New(layouterr.InvalidCoordAssignment,
					"nodes %q and %q overlap in layer %d: %v+%v/2 > %v-%v/2",
					p.ID, q.ID, l, p.X, p.Width, q.X, q.Width)
			}
		}
	}
	return nil
}

func writeBack[N, E any](g *dag.DAG[N, E], sg *sugi.Graph, scaleX, scaleY float64) {
	for _, n := range g.Nodes() {
		sn, ok := sg.Node(n.ID)
		if !ok {
			continue
		}
		n.X = sn.X * scaleX
		n.Y = sn.Y * scaleY
	}

	for _, link := range g.Links() {
		lid := sugi.LinkID{From: link.From, To: link.To}
		chain := sg.DummyChain(lid)
		if len(chain) == 0 {
			link.Points = nil
			continue
		}

		src, _ := sg.Node(link.From)
		dst, _ := sg.Node(link.To)
		points := make([]dag.Point, 0, len(chain)+2)
		points = append(points, dag.Point{X: src.X * scaleX, Y: src.Y * scaleY})
		for _, id := range chain {
			dn, _ := sg.Node(id)
			points = append(points, dag.Point{X: dn.X * scaleX, Y: dn.Y * scaleY})
		}
		points = append(points, dag.Point{X: dst.X * scaleX, Y: dst.Y * scaleY})
		link.Points = points
	}
}
