// Package solve defines the abstract integer- and quadratic-program
// collaborators: the integer program used by simplex layering and
// optimal decrossing, and the quadratic program used by quadratic
// coordinate assignment. It ships one concrete implementation of each:
// [DefaultILPSolver], a dense simplex tableau on plain slices under
// branch-and-bound, and [DefaultQPSolver], an active-set solver built
// on gonum.org/v1/gonum/mat.
//
// The engine never requires these defaults: any type satisfying
// [ILPSolver] or [QPSolver] may be substituted through configuration,
// so an embedding application can swap in a commercial or GPU-backed
// solver without touching the layout packages.
package solve

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Sense is the optimization direction of a linear program.
type Sense int

const (
	// Minimize seeks the smallest objective value.
	Minimize Sense = iota
	// Maximize seeks the largest objective value.
	Maximize
)

// Variable is one column of a linear program: an objective coefficient,
// a sparse map of per-constraint coefficients, and bounds. Integer
// marks the variable as integral for [ILPSolver] implementations that
// branch on it; LP-only solvers may ignore it.
type Variable struct {
	Name         string
	Objective    float64
	Coefficients map[string]float64
	Integer      bool
	// LowerBound and UpperBound bound the variable's value. Set
	// UpperBound to +Inf for a variable unbounded above, or e.g.
	// LowerBound=0, UpperBound=1 for a binary variable.
	// [DefaultILPSolver] also treats a variable whose bounds are both
	// zero (the zero value) as unbounded above, so a variable fixed at
	// 0 cannot be expressed through bounds alone.
	LowerBound float64
	UpperBound float64
}

// Constraint is one row of a linear program. Min and Max bound the
// value of Σ coefficient·variable for that row; a nil bound means
// unbounded on that side. Min == Max (both non-nil and equal) encodes
// an equality constraint.
type Constraint struct {
	Name string
	Min  *float64
	Max  *float64
}

// Assignment maps variable name to its solved value.
type Assignment map[string]float64

// ErrInfeasible is returned when no assignment satisfies every
// constraint.
var ErrInfeasible = errors.New("solve: linear program is infeasible")

// ErrNotPositiveDefinite is returned when a quadratic program's
// objective matrix Q fails a positive-definiteness check.
var ErrNotPositiveDefinite = errors.New("solve: quadratic objective is not positive definite")

// ErrUnbounded is returned when a linear program's objective is
// unbounded in the requested sense.
var ErrUnbounded = errors.New("solve: linear program is unbounded")

// ILPSolver solves a (mixed) integer linear program: minimize or
// maximize a linear objective over the given variables subject to the
// given constraints, respecting each Variable's Integer flag.
type ILPSolver interface {
	SolveILP(vars []Variable, constraints []Constraint, sense Sense) (Assignment, error)
}

// QPSolver solves a convex quadratic program:
//
//	minimize   ½xᵀQx + cᵀx
//	subject to Ax ≥ b
//
// Q must be symmetric positive definite; implementations return
// [ErrNotPositiveDefinite] otherwise. A is an m×n dense matrix, b has
// length m, c has length n, and the returned slice has length n. A nil
// A (with nil b) means there are no constraints.
type QPSolver interface {
	SolveQP(Q *mat.SymDense, c []float64, A *mat.Dense, b []float64) ([]float64, error)
}

// Bound returns a pointer to v, a convenience for building
// [Constraint].Min/Max literals inline.
func Bound(v float64) *float64 { return &v }
