package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/sugigraph/layout/pkg/coord"
	"github.com/sugigraph/layout/pkg/decross"
	"github.com/sugigraph/layout/pkg/solve"
	"github.com/sugigraph/layout/pkg/sugi"
)

// discardLogger is the default, silent logger used when no [Config.WithLogger]
// has been set. It is shared by every Config and writes nowhere; a
// logger set with [Config.WithLogger] is stored in that Config only, so
// two concurrent calls with different loggers never interfere.
var discardLogger = log.NewWithOptions(io.Discard, log.Options{})

// LayeringAlgo selects the algorithm used to assign each node's layer.
type LayeringAlgo int

const (
	// SimplexLayering minimizes total weighted edge span via an
	// integer program. The default.
	SimplexLayering LayeringAlgo = iota
	// LongestPathLayering assigns layers via Kahn's algorithm,
	// anchoring sources (or sinks, see [Config.WithTopDown]) at a
	// fixed layer.
	LongestPathLayering
)

// DecrossAlgo selects the algorithm used to reduce edge crossings.
type DecrossAlgo int

const (
	// TwoLayerDecross runs the iterative median/weighted-mean sweep.
	// The default.
	TwoLayerDecross DecrossAlgo = iota
	// OptimalDecrossAlgo solves an exact integer program over pairwise
	// node orderings.
	OptimalDecrossAlgo
)

// CoordAlgo selects the algorithm used to assign x-coordinates.
type CoordAlgo int

const (
	// QuadraticCoord solves a convex quadratic program per component.
	// The default.
	QuadraticCoord CoordAlgo = iota
	// CenterCoord places each layer independently, centered.
	CenterCoord
	// GreedyCoord is [CenterCoord] with an additional neighbor-pulling
	// pass.
	GreedyCoord
)

// NodeSizeFunc reports a user node's (width, height), called at most
// once per node per layout call.
type NodeSizeFunc func(id string) (width, height float64)

// DummySizeFunc reports the (width, height) shared by every dummy
// waypoint, called at most once per layout call.
type DummySizeFunc func() (width, height float64)

// Config configures one call to [Layout]. The zero value is not valid;
// use [DefaultConfig]. Config is immutable: every With* method returns
// an independent copy with one field replaced, leaving the receiver
// unchanged.
type Config struct {
	layering LayeringAlgo
	decross  DecrossAlgo
	coord    CoordAlgo

	nodeSize  NodeSizeFunc
	dummySize DummySizeFunc

	targetWidth, targetHeight float64
	hasTarget                 bool

	rank  map[string]int
	group map[string]string

	vertWeak   coord.VertWeakFunc
	vertStrong coord.VertStrongFunc
	nodeCurve  coord.NodeCurveFunc
	linkCurve  coord.LinkCurveFunc
	component  float64

	gate      decross.Gate
	heuristic decross.Heuristic
	sweeps    int

	topDown bool

	ilpSolver solve.ILPSolver
	qpSolver  solve.QPSolver

	logger *log.Logger

	strictAccessors bool
}

// DefaultConfig returns a Config matching the documented defaults:
// simplex layering, two-layer sweep decrossing, quadratic coordinate
// assignment, unit-square real nodes, zero-size dummies, vertWeak=1,
// vertStrong=0, nodeCurve=0, linkCurve=1, component=1, a small
// opt-decross gate, and top-down longest-path direction.
func DefaultConfig() Config {
	return Config{
		layering:   SimplexLayering,
		decross:    TwoLayerDecross,
		coord:      QuadraticCoord,
		nodeSize:   func(string) (float64, float64) { return 1, 1 },
		dummySize:  func() (float64, float64) { return 0, 0 },
		vertWeak:   func(string, string) float64 { return 1 },
		vertStrong: func(sugi.LinkID) float64 { return 0 },
		nodeCurve:  func(string) float64 { return 0 },
		linkCurve:  func(sugi.LinkID) float64 { return 1 },
		component:  1,
		gate:       decross.Small,
		heuristic:  decross.Median,
		sweeps:     4,
		topDown:    true,
		ilpSolver:  solve.DefaultILPSolver{},
		qpSolver:   solve.DefaultQPSolver{},
		logger:     discardLogger,
	}
}

// logOrDiscard returns cfg's logger, or the package discard logger if
// none was set.
func (c Config) logOrDiscard() *log.Logger {
	if c.logger != nil {
		return c.logger
	}
	return discardLogger
}

func (c Config) WithLayering(a LayeringAlgo) Config { c.layering = a; return c }
func (c Config) WithDecross(a DecrossAlgo) Config    { c.decross = a; return c }
func (c Config) WithCoord(a CoordAlgo) Config        { c.coord = a; return c }

func (c Config) WithNodeSize(f NodeSizeFunc) Config   { c.nodeSize = f; return c }
func (c Config) WithDummySize(f DummySizeFunc) Config { c.dummySize = f; return c }

// WithSize sets a target bounding box; final coordinates are scaled to
// fit it. Call with width<=0 or height<=0 to clear a previously set
// target.
func (c Config) WithSize(width, height float64) Config {
	if width <= 0 || height <= 0 {
		c.hasTarget = false
		c.targetWidth, c.targetHeight = 0, 0
		return c
	}
	c.hasTarget = true
	c.targetWidth, c.targetHeight = width, height
	return c
}

// WithRank sets per-node rank constraints, used only by simplex
// layering.
func (c Config) WithRank(rank map[string]int) Config { c.rank = rank; return c }

// WithGroup sets per-node group constraints, used only by simplex
// layering.
func (c Config) WithGroup(group map[string]string) Config { c.group = group; return c }

func (c Config) WithVertWeak(f coord.VertWeakFunc) Config     { c.vertWeak = f; return c }
func (c Config) WithVertStrong(f coord.VertStrongFunc) Config { c.vertStrong = f; return c }
func (c Config) WithNodeCurve(f coord.NodeCurveFunc) Config   { c.nodeCurve = f; return c }
func (c Config) WithLinkCurve(f coord.LinkCurveFunc) Config   { c.linkCurve = f; return c }
func (c Config) WithComponent(weight float64) Config          { c.component = weight; return c }

// WithGate sets the opt-decross size gate.
func (c Config) WithGate(g decross.Gate) Config { c.gate = g; return c }

// WithHeuristic sets the two-layer sweep's neighbor-position
// aggregation.
func (c Config) WithHeuristic(h decross.Heuristic) Config { c.heuristic = h; return c }

// WithSweeps bounds the number of two-layer sweep rounds.
func (c Config) WithSweeps(n int) Config { c.sweeps = n; return c }

// WithTopDown selects longest-path layering's anchor direction: true
// anchors sources at layer 0, false anchors sinks at the maximum
// layer.
func (c Config) WithTopDown(topDown bool) Config { c.topDown = topDown; return c }

// WithILPSolver swaps the integer-program backend used by simplex
// layering and optimal decrossing.
func (c Config) WithILPSolver(s solve.ILPSolver) Config { c.ilpSolver = s; return c }

// WithQPSolver swaps the quadratic-program backend used by quadratic
// coordinate assignment.
func (c Config) WithQPSolver(s solve.QPSolver) Config { c.qpSolver = s; return c }

// WithLogger attaches a logger for phase-timing debug output. Nil
// restores the silent default. The logger is also handed to the
// configured [solve.ILPSolver] when it is a [solve.DefaultILPSolver],
// so branch-and-bound diagnostics share the same sink.
func (c Config) WithLogger(l *log.Logger) Config {
	c.logger = l
	if ilp, ok := c.ilpSolver.(solve.DefaultILPSolver); ok {
		ilp.Logger = l
		c.ilpSolver = ilp
	}
	return c
}

// WithStrictAccessors enables a debug check that re-invokes every
// weight/size accessor (node size, dummy size, vertWeak, vertStrong,
// nodeCurve, linkCurve) a second time the first time it sees a given
// input, and fails the layout with an [layouterr.InvalidConfig] error if
// the two calls disagree. Off by default, since it doubles the number
// of accessor calls; turn it on while debugging an accessor that is
// suspected of depending on call count or external mutable state.
func (c Config) WithStrictAccessors(strict bool) Config {
	c.strictAccessors = strict
	return c
}
