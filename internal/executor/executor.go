// Package executor defines the interfaces for running a build graph: the
// Executor that drives a whole run and the Runner that performs the
// commands of a single node.
package executor

import (
	"context"

	"github.com/vk/fontpackgen/internal/dag"
)

// Executor is responsible for orchestrating the end-to-end execution of a DAG.
// It manages concurrency, interacts with the scheduler, and dispatches nodes.
type Executor interface {
	Execute(ctx context.Context) error
}

// Runner performs the commands of one node and returns their combined
// output.
type Runner interface {
	Run(ctx context.Context, n dag.Node) ([]byte, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, n dag.Node) ([]byte, error)

// Run implements the Runner interface.
func (f RunnerFunc) Run(ctx context.Context, n dag.Node) ([]byte, error) {
	return f(ctx, n)
}
