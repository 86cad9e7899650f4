package solve

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSolveQPUnconstrained(t *testing.T) {
	// minimize x^2 + y^2 (Q = 2I, c = 0): optimum at origin.
	Q := mat.NewSymDense(2, []float64{2, 0, 0, 2})
	c := []float64{0, 0}

	x, err := DefaultQPSolver{}.SolveQP(Q, c, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range x {
		if math.Abs(v) > 1e-6 {
			t.Errorf("x[%d] = %v, want ~0", i, v)
		}
	}
}

func TestSolveQPWithInequality(t *testing.T) {
	// minimize (x-3)^2 = x^2 - 6x + 9 s.t. x >= 1.
	// Q = [2], c = [-6], A = [1], b = [1]. Unconstrained optimum is x=3,
	// which already satisfies x>=1, so the constraint should not bind.
	Q := mat.NewSymDense(1, []float64{2})
	c := []float64{-6}
	A := mat.NewDense(1, 1, []float64{1})
	b := []float64{1}

	x, err := DefaultQPSolver{}.SolveQP(Q, c, A, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(x[0]-3) > 1e-4 {
		t.Fatalf("x[0] = %v, want 3", x[0])
	}
}

func TestSolveQPConstraintBinds(t *testing.T) {
	// minimize (x-3)^2 s.t. x >= 5: the constraint must bind at x=5.
	Q := mat.NewSymDense(1, []float64{2})
	c := []float64{-6}
	A := mat.NewDense(1, 1, []float64{1})
	b := []float64{5}

	x, err := DefaultQPSolver{}.SolveQP(Q, c, A, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(x[0]-5) > 1e-4 {
		t.Fatalf("x[0] = %v, want 5", x[0])
	}
}

func TestSolveQPNotPositiveDefinite(t *testing.T) {
	Q := mat.NewSymDense(2, []float64{1, 2, 2, 1}) // indefinite
	c := []float64{0, 0}

	if _, err := (DefaultQPSolver{}).SolveQP(Q, c, nil, nil); err != ErrNotPositiveDefinite {
		t.Fatalf("got %v, want ErrNotPositiveDefinite", err)
	}
}
