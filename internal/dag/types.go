package dag

import "sync"

// Node is one build step.
type Node struct {
	// ID is the target path, or the target name for phony nodes.
	ID string
	// Deps lists the targets this node depends on, in order. A dependency
	// may name a node or a leaf file that no node produces.
	Deps []string
	// Commands are run in order to produce the target.
	Commands []string
	// Phony marks a target that names no file.
	Phony bool
}

// Graph is a collection of nodes and their dependencies, representing a DAG.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the fields below during concurrent access.
	mutex sync.RWMutex
	// nodes stores private copies of all nodes, keyed by their unique ID.
	nodes map[string]*Node
	// order holds node IDs in first-insertion order.
	order []string
	// dependents maps a target, node or leaf, to the nodes depending on it.
	dependents map[string][]string
}
