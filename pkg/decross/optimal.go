package decross

import (
	"fmt"
	"math"
	"sort"

	"github.com/sugigraph/layout/pkg/graphutil"
	"github.com/sugigraph/layout/pkg/layouterr"
	"github.com/sugigraph/layout/pkg/solve"
	"github.com/sugigraph/layout/pkg/sugi"
)

type layerModel struct {
	layer int
	ids   []string
	size  int
}

// Optimal reorders every layer of the sugi-graph at once by solving a
// single integer program over pairwise ordering variables: for each
// layer, one binary variable per unordered pair of its (index-canonical)
// nodes, `1` iff the lower-indexed node ends up placed after the
// higher-indexed one. Transitivity across every triple within a layer
// is enforced directly. For every pair of edges between the same two
// adjacent layers with distinct endpoints on both sides, a non-negative
// slack variable is tied to the two layers' order variables so it
// equals 1 exactly when that edge pair crosses; the objective is the
// total slack, so minimizing it minimizes total crossings.
//
// gate bounds the total number of ordering variables; exceeding it
// fails with [layouterr.GraphTooLarge] rather than building an
// intractably large program.
func Optimal(sg *sugi.Graph, solver solve.ILPSolver, gate Gate) error {
	layerIdxs := sg.Layers()
	models := make([]layerModel, len(layerIdxs))
	totalPairs := 0
	for i, l := range layerIdxs {
		ids := append([]string(nil), sg.LayerOrder(l)...)
		models[i] = layerModel{layer: l, ids: ids, size: len(ids)}
		totalPairs += len(ids) * (len(ids) - 1) / 2
	}
	if limit, bounded := gate.limit(); bounded && totalPairs > limit {
		return layouterr.New(layouterr.GraphTooLarge, "optimal decrossing needs %d ordering variables, exceeds gate limit %d", totalPairs, limit)
	}
	if totalPairs == 0 {
		return nil
	}

	tieBreak := 1.0 / (float64(totalPairs) + 1)

	varsByName := make(map[string]*solve.Variable)
	var constraints []solve.Constraint

	orderVarName := func(layerIdx, a, b int) string {
		return fmt.Sprintf("ord_%d_%d_%d", layerIdx, a, b)
	}
	getOrderVar := func(layerIdx, a, b int) *solve.Variable {
		name := orderVarName(layerIdx, a, b)
		if v, ok := varsByName[name]; ok {
			return v
		}
		v := &solve.Variable{Name: name, Coefficients: map[string]float64{}, Integer: true, LowerBound: 0, UpperBound: 1, Objective: tieBreak}
		varsByName[name] = v
		return v
	}
	// orderExpr returns the variable, sign, and constant such that
	// constant + sign*var.value == 1 iff a is placed after b.
	orderExpr := func(layerIdx, a, b int) (v *solve.Variable, sign, constant float64) {
		if a < b {
			return getOrderVar(layerIdx, a, b), 1, 0
		}
		return getOrderVar(layerIdx, b, a), -1, 1
	}

	slackSeq := 0
	newSlack := func() *solve.Variable {
		slackSeq++
		name := fmt.Sprintf("slack_%d", slackSeq)
		v := &solve.Variable{Name: name, Coefficients: map[string]float64{}, Integer: false, LowerBound: 0, UpperBound: math.Inf(1), Objective: 1}
		varsByName[name] = v
		return v
	}

	addConstraint := func(min float64, terms map[*solve.Variable]float64) {
		cname := fmt.Sprintf("c_%d", len(constraints))
		constraints = append(constraints, solve.Constraint{Name: cname, Min: solve.Bound(min)})
		for v, coef := range terms {
			v.Coefficients[cname] += coef
		}
	}

	// Transitivity within each layer: for every triple i<j<k, the
	// implied pairwise relations must be consistent.
	for li, m := range models {
		for i := 0; i < m.size; i++ {
			for j := i + 1; j < m.size; j++ {
				for k := j + 1; k < m.size; k++ {
					xij := getOrderVar(li, i, j)
					xik := getOrderVar(li, i, k)
					xjk := getOrderVar(li, j, k)
					// x_ij - x_ik + x_jk in [0,1]
					addConstraint(0, map[*solve.Variable]float64{xij: 1, xik: -1, xjk: 1})
					addConstraint(-1, map[*solve.Variable]float64{xij: -1, xik: 1, xjk: -1})
				}
			}
		}
	}

	// Crossing penalties between every pair of adjacent layers.
	for li := 0; li+1 < len(models); li++ {
		upper, lower := models[li], models[li+1]
		upperPos := graphutil.PosMap(upper.ids)
		lowerPos := graphutil.PosMap(lower.ids)

		type edge struct{ p, c int }
		var edges []edge
		for _, id := range upper.ids {
			p := upperPos[id]
			for _, e := range sg.Children(id) {
				if c, ok := lowerPos[e.To]; ok {
					edges = append(edges, edge{p: p, c: c})
				}
			}
		}

		for a := 0; a < len(edges); a++ {
			for b := a + 1; b < len(edges); b++ {
				e1, e2 := edges[a], edges[b]
				if e1.p == e2.p || e1.c == e2.c {
					continue
				}
				pVar, pSign, pConst := orderExpr(li, e1.p, e2.p)
				cVar, cSign, cConst := orderExpr(li+1, e1.c, e2.c)
				slack := newSlack()

				// s - P + C >= 0  =>  s - pSign*pVar + cSign*cVar >= pConst - cConst
				addConstraint(pConst-cConst, map[*solve.Variable]float64{slack: 1, pVar: -pSign, cVar: cSign})
				// s - C + P >= 0  =>  s + pSign*pVar - cSign*cVar >= cConst - pConst
				addConstraint(cConst-pConst, map[*solve.Variable]float64{slack: 1, pVar: pSign, cVar: -cSign})
			}
		}
	}

	vars := make([]solve.Variable, 0, len(varsByName))
	for _, v := range varsByName {
		vars = append(vars, *v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })

	assignment, err := solver.SolveILP(vars, constraints, solve.Minimize)
	if err != nil {
		return fmt.Errorf("decross: optimal solve failed: %w", err)
	}

	afterVal := func(layerIdx, a, b int) float64 {
		if a == b {
			return 0
		}
		if a < b {
			return assignment[orderVarName(layerIdx, a, b)]
		}
		return 1 - assignment[orderVarName(layerIdx, b, a)]
	}

	for li, m := range models {
		if m.size < 2 {
			continue
		}
		score := make([]float64, m.size)
		for i := 0; i < m.size; i++ {
			for j := 0; j < m.size; j++ {
				if i == j {
					continue
				}
				if afterVal(li, i, j) > 0.5 {
					score[i]++
				}
			}
		}
		order := make([]int, m.size)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool { return score[order[i]] < score[order[j]] })
		newIDs := make([]string, m.size)
		for pos, idx := range order {
			newIDs[pos] = m.ids[idx]
		}
		sg.SetLayerOrder(m.layer, newIDs)
	}

	return nil
}
