// Package dag provides a generic directed acyclic graph used as the input
// and output of the layered layout engine.
//
// # Overview
//
// A [DAG] holds nodes carrying arbitrary payload data (type parameter N)
// and directed links carrying arbitrary payload data plus a positive
// multiplicity (type parameter E). The layout engine assigns each node a
// non-negative integer [Node.Layer], an order within that layer, and a
// position ([Node.X], [Node.Y]); it also attaches a control-point polyline
// to any link that spans more than one layer.
//
// # Basic Usage
//
//	g := dag.New[string, string]()
//	g.AddNode("app", "")
//	g.AddNode("lib", "")
//	g.AddLink("app", "lib", "", 1)
//
// Query the graph with [DAG.Children], [DAG.Parents], [DAG.NodesInLayer],
// and the traversal helpers ([DAG.WalkPreorder], [DAG.WalkPostorder],
// [DAG.WalkBreadthFirst]). Use [DAG.Validate] before laying out a graph
// built by hand rather than by a trusted builder.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use; callers must synchronize
// access if multiple goroutines read or modify the same graph. A single
// [DAG] is expected to be owned by one layout call at a time.
package dag
