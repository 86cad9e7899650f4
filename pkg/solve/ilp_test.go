package solve

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSolveILPSimpleMinimize(t *testing.T) {
	// minimize x + y s.t. x + y >= 4, x,y >= 0, integer
	vars := []Variable{
		{Name: "x", Objective: 1, Coefficients: map[string]float64{"c1": 1}, Integer: true, UpperBound: math.Inf(1)},
		{Name: "y", Objective: 1, Coefficients: map[string]float64{"c1": 1}, Integer: true, UpperBound: math.Inf(1)},
	}
	constraints := []Constraint{{Name: "c1", Min: Bound(4)}}

	assign, err := DefaultILPSolver{}.SolveILP(vars, constraints, Minimize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := assign["x"] + assign["y"]
	if math.Abs(total-4) > 1e-6 {
		t.Fatalf("x+y = %v, want 4", total)
	}
}

func TestSolveILPSpanMinimization(t *testing.T) {
	// minimize (y - x) s.t. y - x >= 1, x >= 0, y >= 0, integer.
	vars := []Variable{
		{Name: "x", Objective: -1, Coefficients: map[string]float64{"span": -1}, Integer: true, UpperBound: math.Inf(1)},
		{Name: "y", Objective: 1, Coefficients: map[string]float64{"span": 1}, Integer: true, UpperBound: math.Inf(1)},
	}
	constraints := []Constraint{{Name: "span", Min: Bound(1)}}

	assign, err := DefaultILPSolver{}.SolveILP(vars, constraints, Minimize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := assign["y"] - assign["x"]; math.Abs(diff-1) > 1e-6 {
		t.Fatalf("y-x = %v, want 1", diff)
	}
}

func TestSolveILPInfeasible(t *testing.T) {
	vars := []Variable{
		{Name: "x", Objective: 1, Coefficients: map[string]float64{"c1": 1}, UpperBound: 2},
	}
	constraints := []Constraint{{Name: "c1", Min: Bound(5)}}

	if _, err := (DefaultILPSolver{}).SolveILP(vars, constraints, Minimize); err == nil {
		t.Fatal("expected infeasible error, got nil")
	}
}

func TestSolveILPEquality(t *testing.T) {
	vars := []Variable{
		{Name: "x", Objective: 0, Coefficients: map[string]float64{"c1": 1}, Integer: true, UpperBound: math.Inf(1)},
	}
	constraints := []Constraint{{Name: "c1", Min: Bound(3), Max: Bound(3)}}

	assign, err := DefaultILPSolver{}.SolveILP(vars, constraints, Minimize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assign["x"] != 3 {
		t.Fatalf("x = %v, want 3", assign["x"])
	}
}

func TestSolveILPLogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	vars := []Variable{
		{Name: "x", Objective: 1, Coefficients: map[string]float64{"c1": 1}, Integer: true, UpperBound: math.Inf(1)},
		{Name: "y", Objective: 1, Coefficients: map[string]float64{"c1": 1}, Integer: true, UpperBound: math.Inf(1)},
	}
	constraints := []Constraint{{Name: "c1", Min: Bound(4)}}

	if _, err := (DefaultILPSolver{Logger: logger}).SolveILP(vars, constraints, Minimize); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "branch and bound starting") {
		t.Fatalf("expected a start log line, got: %q", out)
	}
	if !strings.Contains(out, "branch and bound finished") {
		t.Fatalf("expected a finish log line, got: %q", out)
	}
}

func TestSolveILPSilentByDefault(t *testing.T) {
	vars := []Variable{
		{Name: "x", Objective: 1, Coefficients: map[string]float64{"c1": 1}, Integer: true, UpperBound: math.Inf(1)},
	}
	constraints := []Constraint{{Name: "c1", Min: Bound(2)}}

	// No Logger set: must not panic, and must behave identically to the
	// explicit-logger path.
	if _, err := (DefaultILPSolver{}).SolveILP(vars, constraints, Minimize); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
