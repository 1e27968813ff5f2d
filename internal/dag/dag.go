package dag

import (
	"errors"
	"fmt"
	"slices"
)

// ErrConflict is returned when a node is inserted under an existing ID with
// different content.
var ErrConflict = errors.New("conflicting node definition")

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[string]*Node),
		dependents: make(map[string][]string),
	}
}

func clone(n Node) *Node {
	n.Deps = slices.Clone(n.Deps)
	n.Commands = slices.Clone(n.Commands)
	return &n
}

func equal(a, b *Node) bool {
	return a.ID == b.ID &&
		a.Phony == b.Phony &&
		slices.Equal(a.Deps, b.Deps) &&
		slices.Equal(a.Commands, b.Commands)
}

// Put inserts n into the graph. If an identical node with the same ID already
// exists, the function does nothing. A different node under the same ID is an
// ErrConflict, as is an empty ID or a node depending on itself.
func (g *Graph) Put(n Node) error {
	if n.ID == "" {
		return fmt.Errorf("node ID cannot be empty")
	}
	if slices.Contains(n.Deps, n.ID) {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", n.ID, n.ID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	stored := clone(n)
	if existing, ok := g.nodes[n.ID]; ok {
		if equal(existing, stored) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrConflict, n.ID)
	}

	g.nodes[n.ID] = stored
	g.order = append(g.order, n.ID)
	for _, dep := range stored.Deps {
		g.dependents[dep] = append(g.dependents[dep], n.ID)
	}
	return nil
}

// Append adds dependencies to an existing node, skipping those it already
// has. It is meant for aggregate targets that grow while the graph is built.
func (g *Graph) Append(id string, deps ...string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("node not found: %s", id)
	}
	for _, dep := range deps {
		if dep == id {
			return fmt.Errorf("self-referential edge not allowed: %s -> %s", id, id)
		}
		if slices.Contains(n.Deps, dep) {
			continue
		}
		n.Deps = append(n.Deps, dep)
		g.dependents[dep] = append(g.dependents[dep], id)
	}
	return nil
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *clone(*n), true
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return len(g.order)
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	res := make([]Node, len(g.order))
	for i, id := range g.order {
		res[i] = *clone(*g.nodes[id])
	}
	return res
}

// Dependencies returns the IDs of the nodes the given node depends on. Leaf
// dependencies without a node are left out.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	deps := make([]string, 0, len(n.Deps))
	for _, dep := range n.Deps {
		if _, ok := g.nodes[dep]; ok {
			deps = append(deps, dep)
		}
	}
	return deps, nil
}

// Dependents returns the IDs of the nodes that depend on the given node.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if _, ok := g.nodes[id]; !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return slices.Clone(g.dependents[id]), nil
}

// Leaves returns every dependency that names no node, in order of first
// reference.
func (g *Graph) Leaves() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var res []string
	seen := make(map[string]bool)
	for _, id := range g.order {
		for _, dep := range g.nodes[id].Deps {
			if _, ok := g.nodes[dep]; ok || seen[dep] {
				continue
			}
			seen[dep] = true
			res = append(res, dep)
		}
	}
	return res
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, indicating the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Use classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return fmt.Errorf("cycle detected involving node '%s'", id)
		}

		temporary[id] = true

		for _, dep := range g.nodes[id].Deps {
			if _, ok := g.nodes[dep]; !ok {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		delete(temporary, id)
		permanent[id] = true

		return nil
	}

	for _, id := range g.order {
		if err := visit(id); err != nil {
			return err
		}
	}

	return nil
}

// TopologicalOrder returns node IDs so that every node follows its
// dependencies. Ties are broken by insertion order.
func (g *Graph) TopologicalOrder() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	pending := make(map[string]int, len(g.order))
	for _, id := range g.order {
		for _, dep := range g.nodes[id].Deps {
			if _, ok := g.nodes[dep]; ok {
				pending[id]++
			}
		}
	}

	res := make([]string, 0, len(g.order))
	done := make(map[string]bool, len(g.order))
	for len(res) < len(g.order) {
		progress := false
		for _, id := range g.order {
			if done[id] || pending[id] > 0 {
				continue
			}
			done[id] = true
			res = append(res, id)
			progress = true
			for _, dependent := range g.dependents[id] {
				pending[dependent]--
			}
		}
		if !progress {
			return nil, errors.New("graph contains a cycle")
		}
	}
	return res, nil
}
