package scheduler

import (
	"fmt"
	"strings"

	"github.com/vk/fontpackgen/internal/dag"
	"github.com/vk/fontpackgen/internal/node"
)

// DefaultGoal is the target run when none is requested.
const DefaultGoal = "all"

// DefaultScheduler is the dependency-counting implementation of Scheduler.
// Its node set is fixed at construction; only the counters change.
type DefaultScheduler struct {
	order      []*node.Node
	dependents map[string][]*node.Node
}

// New creates a scheduler over the closure of the given goals. Without
// goals DefaultGoal is used. A goal must name a node of the graph and must
// not be a special target such as .PHONY.
func New(g *dag.Graph, goals ...string) (*DefaultScheduler, error) {
	if len(goals) == 0 {
		goals = []string{DefaultGoal}
	}

	closure := make(map[string]bool)
	stack := make([]string, 0, len(goals))
	for _, goal := range goals {
		if strings.HasPrefix(goal, ".") {
			return nil, fmt.Errorf("special target %s cannot be a goal", goal)
		}
		if !g.Has(goal) {
			return nil, fmt.Errorf("no rule to make target %q", goal)
		}
		stack = append(stack, goal)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if closure[id] {
			continue
		}
		closure[id] = true
		deps, err := g.Dependencies(id)
		if err != nil {
			return nil, err
		}
		stack = append(stack, deps...)
	}

	s := &DefaultScheduler{dependents: make(map[string][]*node.Node)}
	byID := make(map[string]*node.Node, len(closure))
	for _, spec := range g.Nodes() {
		if !closure[spec.ID] {
			continue
		}
		n, err := node.New(spec)
		if err != nil {
			return nil, fmt.Errorf("cannot schedule %s: %w", spec.ID, err)
		}
		byID[spec.ID] = n
		s.order = append(s.order, n)
	}

	for _, n := range s.order {
		var count int32
		seen := make(map[string]bool, len(n.Spec.Deps))
		for _, dep := range n.Spec.Deps {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			if _, ok := byID[dep]; !ok {
				continue
			}
			count++
			s.dependents[dep] = append(s.dependents[dep], n)
		}
		n.SetDepCount(count)
	}
	return s, nil
}

// Nodes implements the Scheduler interface.
func (s *DefaultScheduler) Nodes() []*node.Node {
	return s.order
}

// Ready implements the Scheduler interface.
func (s *DefaultScheduler) Ready() []*node.Node {
	var res []*node.Node
	for _, n := range s.order {
		if n.DepCount() == 0 {
			res = append(res, n)
		}
	}
	return res
}

// Complete implements the Scheduler interface.
func (s *DefaultScheduler) Complete(n *node.Node) []*node.Node {
	var res []*node.Node
	for _, dependent := range s.dependents[n.Spec.ID] {
		if dependent.DecrementDepCount() == 0 {
			res = append(res, dependent)
		}
	}
	return res
}

// Dependents implements the Scheduler interface.
func (s *DefaultScheduler) Dependents(n *node.Node) []*node.Node {
	return s.dependents[n.Spec.ID]
}
