package coord

import (
	"sort"

	"github.com/sugigraph/layout/pkg/graphutil"
	"github.com/sugigraph/layout/pkg/layouterr"
	"github.com/sugigraph/layout/pkg/solve"
	"github.com/sugigraph/layout/pkg/sugi"
	"gonum.org/v1/gonum/mat"
)

// ridgeFactor is a tiny Tikhonov regularization added to every
// component's objective diagonal. The vertical/curvature penalties are
// pure squared differences, so their Hessian is a graph Laplacian: it
// is positive semi-definite but singular along the uniform-translation
// direction, which the active-set solver's Cholesky-based unconstrained
// start cannot handle. The ridge breaks that single degeneracy without
// perturbing the relative layout; it is independent of the "too many
// zero weights" failure mode, which is detected separately per node.
const ridgeFactor = 1e-9

// Quadratic assigns x-coordinates by solving one convex quadratic
// program per connected component of sg, penalizing vertical edge
// slant and waypoint curvature subject to per-layer non-overlap, then
// placing components left-to-right using a "left-of" order inferred
// from shared layers (pruning pairs whose relative order is ambiguous
// because it is part of a cycle). It returns the combined layout's
// total width.
func Quadratic(sg *sugi.Graph, solver solve.QPSolver, w Weights) (float64, error) {
	components := sg.Components()
	if len(components) == 0 {
		return 0, nil
	}

	anyPositive := false
	for _, n := range sg.Nodes() {
		if n.Width > 0 {
			anyPositive = true
			break
		}
	}
	if !anyPositive {
		return 0, layouterr.New(layouterr.ZeroWidth, "no node in the graph has positive width")
	}

	widths := make([]float64, len(components))
	for i, comp := range components {
		width, err := solveComponent(sg, solver, w, comp)
		if err != nil {
			return 0, err
		}
		widths[i] = width
	}

	order := orderComponents(sg, components)
	gap := w.Component
	if gap < 0 {
		gap = 0
	}

	x := 0.0
	for i, ci := range order {
		if i > 0 {
			x += gap
		}
		for _, id := range components[ci] {
			n, _ := sg.Node(id)
			n.X += x
		}
		x += widths[ci]
	}
	return x, nil
}

func solveComponent(sg *sugi.Graph, solver solve.QPSolver, w Weights, ids []string) (float64, error) {
	if len(ids) == 1 {
		n, _ := sg.Node(ids[0])
		n.X = n.Width / 2
		return n.Width, nil
	}

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	n := len(ids)

	q := make([][]float64, n)
	for i := range q {
		q[i] = make([]float64, n)
	}
	c := make([]float64, n)

	addQuad := func(i, j int, weight float64) {
		if weight == 0 {
			return
		}
		// weight*(x_i - x_j)^2 contributes weight to both diagonals
		// and -weight to each off-diagonal (symmetric).
		q[i][i] += weight
		q[j][j] += weight
		q[i][j] -= weight
		q[j][i] -= weight
	}
	addCurve := func(i, j, k int, weight float64) {
		if weight == 0 {
			return
		}
		// weight*(x_i - 2x_j + x_k)^2 expanded into its six terms.
		q[i][i] += weight
		q[j][j] += 4 * weight
		q[k][k] += weight
		q[i][j] -= 2 * weight
		q[j][i] -= 2 * weight
		q[j][k] -= 2 * weight
		q[k][j] -= 2 * weight
		q[i][k] += weight
		q[k][i] += weight
	}

	for _, id := range ids {
		from, ok := index[id]
		if !ok {
			continue
		}
		node, _ := sg.Node(id)
		for _, e := range sg.Children(id) {
			to, ok := index[e.To]
			if !ok {
				continue
			}
			var weight float64
			if node.Kind == sugi.Real {
				if w.VertWeak != nil {
					weight = w.VertWeak(e.From, e.To)
				}
			} else {
				if w.VertStrong != nil {
					weight = w.VertStrong(e.Link)
				}
			}
			if weight < 0 {
				return 0, layouterr.New(layouterr.InvalidConfig, "negative vertical weight for link %s->%s", e.From, e.To)
			}
			addQuad(from, to, weight)
		}

		if parents := sg.Parents(id); len(parents) > 0 {
			if children := sg.Children(id); len(children) > 0 {
				var curveWeight float64
				if node.Kind == sugi.Real {
					if w.NodeCurve != nil {
						curveWeight = w.NodeCurve(id)
					}
				} else {
					if w.LinkCurve != nil {
						curveWeight = w.LinkCurve(node.LinkID)
					}
				}
				for _, in := range parents {
					a, ok := index[in.From]
					if !ok {
						continue
					}
					for _, out := range children {
						cIdx, ok := index[out.To]
						if !ok {
							continue
						}
						addCurve(a, from, cIdx, curveWeight)
					}
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		rowMass := 0.0
		for j := 0; j < n; j++ {
			if j != i {
				rowMass += abs(q[i][j])
			}
		}
		if rowMass == 0 {
			return 0, layouterr.New(layouterr.IllDefinedObjective, "node %q has no quadratic coupling to the rest of its component: all applicable weights are zero", ids[i])
		}
		q[i][i] += ridgeFactor
	}

	symQ := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			symQ.SetSym(i, j, q[i][j])
		}
	}

	var aRows [][]float64
	var bRows []float64
	for _, layer := range sg.Layers() {
		order := sg.LayerOrder(layer)
		for k := 0; k+1 < len(order); k++ {
			p, q1 := order[k], order[k+1]
			pi, pok := index[p]
			qi, qok := index[q1]
			if !pok || !qok {
				continue
			}
			pn, _ := sg.Node(p)
			qn, _ := sg.Node(q1)
			row := make([]float64, n)
			row[qi] = 1
			row[pi] = -1
			aRows = append(aRows, row)
			bRows = append(bRows, (pn.Width+qn.Width)/2)
		}
	}

	var aMat *mat.Dense
	if len(aRows) > 0 {
		aMat = mat.NewDense(len(aRows), n, nil)
		for i, row := range aRows {
			aMat.SetRow(i, row)
		}
	}

	x, err := solver.SolveQP(symQ, c, aMat, bRows)
	if err != nil {
		if err == solve.ErrNotPositiveDefinite {
			return 0, layouterr.Wrap(layouterr.IllDefinedObjective, err, "quadratic coordinate objective is not positive definite")
		}
		return 0, err
	}

	minX, maxX := x[0], x[0]
	for i, id := range ids {
		node, _ := sg.Node(id)
		node.X = x[i]
		left := x[i] - node.Width/2
		right := x[i] + node.Width/2
		if left < minX {
			minX = left
		}
		if right > maxX {
			maxX = right
		}
	}
	for _, id := range ids {
		node, _ := sg.Node(id)
		node.X -= minX
	}
	return maxX - minX, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// orderComponents returns component indices ordered left-to-right,
// inferred from each layer's node order: if node p (in component A)
// immediately precedes node q (in component B) in some layer, A is
// recorded as left-of B. A left-of edge is only honored when the
// reverse relation is not reachable (i.e. the pair is not part of a
// cycle, so their relative order is unambiguous); ambiguous or
// unrelated pairs keep their original discovery order.
func orderComponents(sg *sugi.Graph, components [][]string) []int {
	compOf := make(map[string]int, len(sg.Nodes()))
	for ci, comp := range components {
		for _, id := range comp {
			compOf[id] = ci
		}
	}

	adj := make(map[int][]int, len(components))
	for ci := range components {
		adj[ci] = nil
	}
	seen := make(map[graphutil.Pair]bool)
	for _, layer := range sg.Layers() {
		order := sg.LayerOrder(layer)
		for i := 0; i+1 < len(order); i++ {
			a, b := compOf[order[i]], compOf[order[i+1]]
			if a == b {
				continue
			}
			pair := graphutil.Pair{A: a, B: b}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			adj[a] = append(adj[a], b)
		}
	}

	indeg := make(map[int]int, len(components))
	for ci := range components {
		indeg[ci] = 0
	}
	var edges []graphutil.Pair
	for a, bs := range adj {
		for _, b := range bs {
			back := graphutil.Reachable(adj, b)
			if _, cyclic := back[a]; cyclic {
				continue // part of a cycle: ambiguous, drop
			}
			edges = append(edges, graphutil.Pair{A: a, B: b})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	pruned := make(map[int][]int, len(components))
	for _, e := range edges {
		pruned[e.A] = append(pruned[e.A], e.B)
		indeg[e.B]++
	}

	var queue []int
	for ci := 0; ci < len(components); ci++ {
		if indeg[ci] == 0 {
			queue = append(queue, ci)
		}
	}
	sort.Ints(queue)

	var order []int
	visited := make(map[int]bool, len(components))
	for len(queue) > 0 {
		ci := queue[0]
		queue = queue[1:]
		if visited[ci] {
			continue
		}
		visited[ci] = true
		order = append(order, ci)
		next := append([]int(nil), pruned[ci]...)
		sort.Ints(next)
		for _, nb := range next {
			indeg[nb]--
			if indeg[nb] == 0 {
				queue = append(queue, nb)
				sort.Ints(queue)
			}
		}
	}
	for ci := 0; ci < len(components); ci++ {
		if !visited[ci] {
			order = append(order, ci)
		}
	}
	return order
}
