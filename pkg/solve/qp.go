package solve

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultQPSolver is a primal active-set solver for convex quadratic
// programs with inequality constraints, built on gonum's dense linear
// algebra. It starts from the unconstrained minimizer, greedily adds
// the most-violated constraint to a working set (solved as an equality
// via the KKT system), and drops any working-set constraint whose
// Lagrange multiplier goes negative, until both primal and dual
// feasibility hold.
type DefaultQPSolver struct {
	// MaxIterations bounds the number of working-set updates. Zero uses
	// a built-in default.
	MaxIterations int
}

const (
	defaultQPMaxIterations = 2000
	qpFeasTol              = 1e-7
)

// SolveQP implements [QPSolver].
func (s DefaultQPSolver) SolveQP(Q *mat.SymDense, c []float64, A *mat.Dense, b []float64) ([]float64, error) {
	n, _ := Q.Dims()

	var chol mat.Cholesky
	if !chol.Factorize(Q) {
		return nil, ErrNotPositiveDefinite
	}

	negC := make([]float64, n)
	for i, v := range c {
		negC[i] = -v
	}
	var x0 mat.VecDense
	if err := chol.SolveVecTo(&x0, mat.NewVecDense(n, negC)); err != nil {
		return nil, err
	}
	x := append([]float64(nil), x0.RawVector().Data...)

	var m int
	if A != nil {
		m, _ = A.Dims()
	}
	if m == 0 {
		return x, nil
	}

	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultQPMaxIterations
	}

	working := make(map[int]bool, m)

	for iter := 0; iter < maxIter; iter++ {
		// Primal feasibility: find the most-violated constraint.
		violated := -1
		worst := qpFeasTol
		for i := 0; i < m; i++ {
			if working[i] {
				continue
			}
			row := mat.Row(nil, i, A)
			lhs := floats.Dot(row, x)
			viol := b[i] - lhs
			if viol > worst {
				worst = viol
				violated = i
			}
		}
		if violated != -1 {
			working[violated] = true
			newX, _, err := solveKKT(Q, A, b, c, working, n)
			if err != nil {
				// Singular KKT system: drop the constraint just added
				// and stop refining rather than fail the whole layout.
				delete(working, violated)
				break
			}
			x = newX
			continue
		}

		// Primal-feasible: check dual feasibility of the working set.
		if len(working) == 0 {
			break
		}
		_, lambda, err := solveKKT(Q, A, b, c, working, n)
		if err != nil {
			break
		}
		dropIdx, worstLambda := -1, -qpFeasTol
		i := 0
		idxOrder := sortedKeys(working)
		for _, wi := range idxOrder {
			if lambda[i] < worstLambda {
				worstLambda = lambda[i]
				dropIdx = wi
			}
			i++
		}
		if dropIdx == -1 {
			break // both primal and dual feasible: optimal
		}
		delete(working, dropIdx)
		newX, _, err := solveKKT(Q, A, b, c, working, n)
		if err != nil {
			break
		}
		x = newX
	}

	return x, nil
}

// solveKKT solves the equality-constrained QP
//
//	minimize    ½xᵀQx + cᵀx
//	subject to  A_w x = b_w   (w = working)
//
// via its KKT linear system, returning x and the Lagrange multipliers
// for the rows in working, in ascending row-index order.
func solveKKT(Q *mat.SymDense, A *mat.Dense, b, c []float64, working map[int]bool, n int) ([]float64, []float64, error) {
	idx := sortedKeys(working)
	k := len(idx)
	size := n + k

	kkt := mat.NewDense(size, size, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			kkt.Set(i, j, Q.At(i, j))
		}
	}
	for r, rowIdx := range idx {
		for j := 0; j < n; j++ {
			v := A.At(rowIdx, j)
			kkt.Set(j, n+r, -v)
			kkt.Set(n+r, j, v)
		}
	}

	rhs := mat.NewDense(size, 1, nil)
	for i := 0; i < n; i++ {
		rhs.Set(i, 0, -c[i])
	}
	for r, rowIdx := range idx {
		rhs.Set(n+r, 0, b[rowIdx])
	}

	var sol mat.Dense
	if err := sol.Solve(kkt, rhs); err != nil {
		return nil, nil, err
	}

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = sol.At(i, 0)
	}
	lambda := make([]float64, k)
	for r := range idx {
		lambda[r] = sol.At(n+r, 0)
	}
	return x, lambda, nil
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
