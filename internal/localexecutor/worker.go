package localexecutor

import (
	"context"
	"fmt"

	"github.com/vk/fontpackgen/internal/ctxlog"
	"github.com/vk/fontpackgen/internal/node"
)

// process runs one ready node and releases its dependents. The returned
// error cancels the run; it is only non-nil on failure without KeepGoing.
func (e *Executor) process(ctx context.Context, n *node.Node, readyChan chan<- *node.Node) error {
	logger := ctxlog.FromContext(ctx).With("target", n.ID())

	if n.GetState().Terminal() {
		return nil
	}
	if ctx.Err() != nil {
		e.skip(ctx, n, fmt.Errorf("run cancelled: %w", ctx.Err()))
		return nil
	}

	logger.Debug("Worker picked up node for execution.")
	n.SetState(node.StatusRunning)
	e.record(ctx, n, node.StatusRunning, nil)

	output, err := e.runner.Run(ctx, n.Spec)
	if len(output) > 0 {
		if storeErr := e.store.SetOutput(ctx, *n.Address(), output); storeErr != nil {
			logger.Warn("Failed to record node output.", "error", storeErr)
		}
	}

	if err != nil && ctx.Err() != nil {
		logger.Debug("Node interrupted by cancellation.", "error", err)
		e.skip(ctx, n, fmt.Errorf("run cancelled: %w", ctx.Err()))
		return nil
	}
	if err != nil {
		logger.Error("Node execution failed.", "error", err)
		e.record(ctx, n, node.StatusFailed, err)
		e.skipDependents(ctx, n)
		n.Finish(node.StatusFailed, err, e.wg.Done)
		if e.opts.KeepGoing {
			return nil
		}
		return fmt.Errorf("%s: %w", n.ID(), err)
	}

	logger.Debug("Node execution succeeded.")
	e.record(ctx, n, node.StatusCompleted, nil)
	// Dependents are queued before this node counts as finished, so the
	// channel cannot be closed under them.
	for _, dependent := range e.sched.Complete(n) {
		logger.Debug("Unlocking dependent node.", "dependentID", dependent.ID())
		readyChan <- dependent
	}
	n.Finish(node.StatusCompleted, nil, e.wg.Done)
	return nil
}

// skip finishes a node that will never run, and everything depending on it.
func (e *Executor) skip(ctx context.Context, n *node.Node, reason error) {
	if !n.Skip(reason, nil) {
		return
	}
	e.record(ctx, n, node.StatusSkipped, reason)
	e.skipDependents(ctx, n)
	e.wg.Done()
}

// skipDependents marks every transitive dependent of n as skipped.
func (e *Executor) skipDependents(ctx context.Context, n *node.Node) {
	reason := fmt.Errorf("dependency %s did not complete", n.ID())
	for _, dependent := range e.sched.Dependents(n) {
		e.skip(ctx, dependent, reason)
	}
}

func (e *Executor) record(ctx context.Context, n *node.Node, status node.Status, err error) {
	logger := ctxlog.FromContext(ctx)
	if storeErr := e.store.SetStatus(ctx, *n.Address(), status); storeErr != nil {
		logger.Warn("Failed to record node status.", "target", n.ID(), "error", storeErr)
	}
	if err == nil {
		return
	}
	if storeErr := e.store.SetError(ctx, *n.Address(), err); storeErr != nil {
		logger.Warn("Failed to record node error.", "target", n.ID(), "error", storeErr)
	}
}
