package layering

import (
	"fmt"
	"math"
	"sort"

	"github.com/sugigraph/layout/pkg/dag"
	"github.com/sugigraph/layout/pkg/layouterr"
	"github.com/sugigraph/layout/pkg/solve"
)

// Simplex assigns layers by solving an integer program that minimizes
// the total weighted edge span, Σ (layer(v)-layer(u))·count, subject to
// layer(v) - layer(u) >= 1 for every link (2 for a multi-edge). rank
// and group encode optional user constraints:
//
//   - rank maps a node ID to an integer rank; nodes with equal rank are
//     forced to share a layer, and strictly increasing ranks force
//     strictly increasing layers.
//   - group maps a node ID to a group name; nodes sharing a group name
//     are forced to share a layer, with no ordering implied between
//     groups.
//
// Either map may be nil or partial (nodes it omits are unconstrained).
// Any node the solver leaves unassigned defaults to layer 0.
func Simplex[N, E any](g *dag.DAG[N, E], solver solve.ILPSolver, rank map[string]int, group map[string]string) error {
	nodes := g.Nodes()
	vars := make([]solve.Variable, len(nodes))
	varByID := make(map[string]*solve.Variable, len(nodes))
	for i, n := range nodes {
		vars[i] = solve.Variable{
			Name:         n.ID,
			Coefficients: make(map[string]float64),
			Integer:      true,
			LowerBound:   0,
			UpperBound:   math.Inf(1),
		}
		varByID[n.ID] = &vars[i]
	}

	var constraints []solve.Constraint
	links := g.Links()
	for i, link := range links {
		cname := fmt.Sprintf("span_%d", i)
		constraints = append(constraints, solve.Constraint{Name: cname, Min: solve.Bound(float64(spanOf(link.Count)))})
		varByID[link.To].Coefficients[cname] = 1
		varByID[link.From].Coefficients[cname] = -1
		varByID[link.To].Objective += float64(link.Count)
		varByID[link.From].Objective -= float64(link.Count)
	}

	addEquality := func(a, b string, tag string) {
		if a == b {
			return
		}
		cname := fmt.Sprintf("eq_%s_%s_%s", tag, a, b)
		constraints = append(constraints, solve.Constraint{Name: cname, Min: solve.Bound(0), Max: solve.Bound(0)})
		varByID[b].Coefficients[cname] = 1
		varByID[a].Coefficients[cname] = -1
	}

	hasUserConstraints := len(rank) > 0 || len(group) > 0

	if len(rank) > 0 {
		buckets := make(map[int][]string)
		for id, r := range rank {
			if _, ok := varByID[id]; ok {
				buckets[r] = append(buckets[r], id)
			}
		}
		ranks := make([]int, 0, len(buckets))
		for r := range buckets {
			ranks = append(ranks, r)
		}
		sort.Ints(ranks)
		rep := make(map[int]string, len(ranks))
		for _, r := range ranks {
			ids := buckets[r]
			sort.Strings(ids)
			rep[r] = ids[0]
			for _, id := range ids[1:] {
				addEquality(ids[0], id, "rank")
			}
		}
		for i := 1; i < len(ranks); i++ {
			cname := fmt.Sprintf("rankorder_%d_%d", ranks[i-1], ranks[i])
			constraints = append(constraints, solve.Constraint{Name: cname, Min: solve.Bound(1)})
			varByID[rep[ranks[i]]].Coefficients[cname] = 1
			varByID[rep[ranks[i-1]]].Coefficients[cname] = -1
		}
	}

	if len(group) > 0 {
		buckets := make(map[string][]string)
		for id, name := range group {
			if _, ok := varByID[id]; ok {
				buckets[name] = append(buckets[name], id)
			}
		}
		for _, ids := range buckets {
			if len(ids) < 2 {
				continue
			}
			sort.Strings(ids)
			for _, id := range ids[1:] {
				addEquality(ids[0], id, "group")
			}
		}
	}

	assignment, err := solver.SolveILP(vars, constraints, solve.Minimize)
	if err != nil {
		if err == solve.ErrInfeasible && hasUserConstraints {
			return layouterr.Wrap(layouterr.IllDefinedConstraints, err, "simplex layering LP infeasible under rank/group constraints")
		}
		return fmt.Errorf("layering: simplex solve failed: %w", err)
	}

	layer := make(map[string]int, len(nodes))
	for _, n := range nodes {
		layer[n.ID] = 0
		if v, ok := assignment[n.ID]; ok {
			layer[n.ID] = int(math.Round(v))
		}
	}

	writeLayers(g, layer)
	return nil
}
