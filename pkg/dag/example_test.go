package dag_test

import (
	"fmt"

	"github.com/sugigraph/layout/pkg/dag"
)

func ExampleDAG_basic() {
	g := dag.New[string, string]()
	_ = g.AddNode("app", "application")
	_ = g.AddNode("lib", "library")
	_ = g.AddNode("core", "core library")
	_ = g.AddLink("app", "lib", "", 1)
	_ = g.AddLink("lib", "core", "", 1)

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Links:", g.LinkCount())
	// Output:
	// Nodes: 3
	// Links: 2
}

func ExampleDAG_traversal() {
	g := dag.New[string, string]()
	for _, id := range []string{"app", "auth", "cache", "core"} {
		_ = g.AddNode(id, "")
	}
	_ = g.AddLink("app", "auth", "", 1)
	_ = g.AddLink("app", "cache", "", 1)
	_ = g.AddLink("auth", "core", "", 1)
	_ = g.AddLink("cache", "core", "", 1)

	fmt.Println(g.WalkBreadthFirst())
	// Output:
	// [app auth cache core]
}

func ExampleDAG_Validate_cycle() {
	g := dag.New[string, string]()
	_ = g.AddNode("a", "")
	_ = g.AddNode("b", "")
	_ = g.AddLink("a", "b", "", 1)
	_ = g.AddLink("b", "a", "", 1)

	err := g.Validate()
	fmt.Println(err)
	// Output:
	// graph contains a cycle
}
