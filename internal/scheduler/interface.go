package scheduler

import "github.com/vk/fontpackgen/internal/node"

// Scheduler tracks dependency satisfaction for one run.
//
// The executor seeds its workers with Ready, reports every successful node
// to Complete and walks Dependents to skip what a failure makes
// unreachable. Implementations must allow Complete to be called from
// several goroutines.
type Scheduler interface {
	// Nodes returns every node of the run in graph order.
	Nodes() []*node.Node
	// Ready returns the nodes that have no unmet dependencies at the start.
	Ready() []*node.Node
	// Complete records that n succeeded and returns the dependents that
	// became ready because of it.
	Complete(n *node.Node) []*node.Node
	// Dependents returns the nodes of the run that depend directly on n.
	Dependents(n *node.Node) []*node.Node
}
