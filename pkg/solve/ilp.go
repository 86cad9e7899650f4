package solve

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// DefaultILPSolver is a branch-and-bound solver over an LP relaxation
// computed by a dense Big-M primal simplex. It is sized for the
// variable counts simplex layering and the optimal decrossing gate
// allow (spec §4.7's small/medium/large gate), not for general-purpose
// combinatorial optimization.
type DefaultILPSolver struct {
	// MaxNodes bounds the number of branch-and-bound nodes explored
	// before the solver gives up refining fractional variables and
	// returns its best rounded relaxation. Zero uses a built-in default.
	MaxNodes int

	// Logger receives branch-and-bound diagnostics (nodes explored,
	// budget exhaustion, relaxation infeasibility). Nil uses a discard
	// logger, so the zero value stays silent.
	Logger *log.Logger
}

const defaultMaxBBNodes = 20000

var discardLogger = log.NewWithOptions(io.Discard, log.Options{})

func (s DefaultILPSolver) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return discardLogger
}

// SolveILP implements [ILPSolver].
func (s DefaultILPSolver) SolveILP(vars []Variable, constraints []Constraint, sense Sense) (Assignment, error) {
	n := len(vars)
	lb := make([]float64, n)
	ub := make([]float64, n)
	for i, v := range vars {
		lb[i] = v.LowerBound
		if v.UpperBound == 0 && v.LowerBound == 0 {
			ub[i] = math.Inf(1)
		} else {
			ub[i] = v.UpperBound
		}
	}

	budget := s.MaxNodes
	if budget <= 0 {
		budget = defaultMaxBBNodes
	}
	l := s.logger()
	l.Debug("branch and bound starting", "variables", n, "constraints", len(constraints), "budget", budget)

	explored := 0
	x, _, err := branchAndBound(vars, constraints, sense, lb, ub, &budget, &explored, l)
	if err != nil {
		l.Debug("branch and bound infeasible", "nodes_explored", explored, "err", err)
		return nil, err
	}
	l.Debug("branch and bound finished", "nodes_explored", explored, "nodes_remaining", budget)

	assignment := make(Assignment, n)
	for i, v := range vars {
		val := x[i]
		if v.Integer {
			val = math.Round(val)
		}
		assignment[v.Name] = val
	}
	return assignment, nil
}

func branchAndBound(vars []Variable, constraints []Constraint, sense Sense, lb, ub []float64, budget, explored *int, l *log.Logger) ([]float64, float64, error) {
	*explored++
	x, obj, err := relax(vars, constraints, sense, lb, ub)
	if err != nil {
		return nil, 0, err
	}

	idx := mostFractional(vars, x)
	if idx == -1 {
		return x, obj, nil
	}
	if *budget <= 0 {
		// Node budget exhausted: accept the relaxation's rounding as a
		// heuristic fallback rather than exploring further. The
		// operators that call into this solver already gate input size
		// (spec §4.7) so this path is only reached on pathological
		// inputs outside that gate.
		l.Debug("branch and bound budget exhausted, accepting relaxation rounding", "nodes_explored", *explored)
		return x, obj, nil
	}
	*budget--

	ub1 := append([]float64(nil), ub...)
	ub1[idx] = math.Floor(x[idx])
	xFloor, objFloor, errFloor := branchAndBound(vars, constraints, sense, lb, ub1, budget, explored, l)

	lb2 := append([]float64(nil), lb...)
	lb2[idx] = math.Ceil(x[idx])
	xCeil, objCeil, errCeil := branchAndBound(vars, constraints, sense, lb2, ub, budget, explored, l)

	switch {
	case errFloor != nil && errCeil != nil:
		return nil, 0, ErrInfeasible
	case errFloor != nil:
		return xCeil, objCeil, nil
	case errCeil != nil:
		return xFloor, objFloor, nil
	case objFloor <= objCeil:
		return xFloor, objFloor, nil
	default:
		return xCeil, objCeil, nil
	}
}

func mostFractional(vars []Variable, x []float64) int {
	idx := -1
	worst := 1e-6
	for i, v := range vars {
		if !v.Integer {
			continue
		}
		frac := x[i] - math.Floor(x[i])
		dist := math.Min(frac, 1-frac)
		if dist > worst {
			worst = dist
			idx = i
		}
	}
	return idx
}

// relax solves the LP relaxation (ignoring Integer flags) for the given
// bounds, returning the variable values and the objective value in an
// internally-consistent minimize sense (negated when sense == Maximize,
// so branch-and-bound can always compare by "smaller is better").
func relax(vars []Variable, constraints []Constraint, sense Sense, lb, ub []float64) ([]float64, float64, error) {
	n := len(vars)
	nameIdx := make(map[string]int, n)
	for i, v := range vars {
		nameIdx[v.Name] = i
	}

	obj := make([]float64, n)
	for i, v := range vars {
		if sense == Maximize {
			obj[i] = -v.Objective
		} else {
			obj[i] = v.Objective
		}
	}

	var rows []stdRow
	for _, c := range constraints {
		coeffs := make([]float64, n)
		for i, v := range vars {
			if coef, ok := v.Coefficients[c.Name]; ok {
				coeffs[i] = coef
			}
		}
		offset := 0.0
		for i := range coeffs {
			if lb[i] != 0 && !math.IsInf(lb[i], 0) {
				offset += coeffs[i] * lb[i]
			}
		}

		if c.Min != nil && c.Max != nil && *c.Min == *c.Max {
			rows = append(rows, normalizeRow(coeffs, *c.Min-offset, '='))
			continue
		}
		if c.Min != nil {
			rows = append(rows, normalizeRow(coeffs, *c.Min-offset, '>'))
		}
		if c.Max != nil {
			rows = append(rows, normalizeRow(coeffs, *c.Max-offset, '<'))
		}
	}

	// Upper-bound rows for shifted variables y_i = x_i - lb_i <= ub_i - lb_i.
	for i := 0; i < n; i++ {
		if math.IsInf(ub[i], 1) {
			continue
		}
		coeffs := make([]float64, n)
		coeffs[i] = 1
		rows = append(rows, normalizeRow(coeffs, ub[i]-lb[i], '<'))
	}

	x, err := solveBigM(n, obj, rows)
	if err != nil {
		return nil, 0, err
	}

	result := make([]float64, n)
	objVal := 0.0
	for i := range result {
		result[i] = x[i] + lb[i]
		objVal += obj[i] * result[i]
	}
	return result, objVal, nil
}

func normalizeRow(coeffs []float64, rhs float64, kind byte) stdRow {
	if rhs < 0 {
		flipped := make([]float64, len(coeffs))
		for i, c := range coeffs {
			flipped[i] = -c
		}
		rhs = -rhs
		switch kind {
		case '<':
			kind = '>'
		case '>':
			kind = '<'
		}
		return stdRow{coeffs: flipped, rhs: rhs, kind: kind}
	}
	return stdRow{coeffs: coeffs, rhs: rhs, kind: kind}
}
