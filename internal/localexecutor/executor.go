// Package localexecutor provides a concrete, in-process implementation of the
// executor.Executor interface. Nodes run on a bounded pool of goroutines as
// soon as their dependencies complete.
package localexecutor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vk/fontpackgen/internal/ctxlog"
	"github.com/vk/fontpackgen/internal/executor"
	"github.com/vk/fontpackgen/internal/node"
	"github.com/vk/fontpackgen/internal/nodestore"
	"github.com/vk/fontpackgen/internal/scheduler"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Options tune a run.
type Options struct {
	// Jobs bounds the number of nodes running at once. Values below one
	// mean one.
	Jobs int
	// KeepGoing runs every node whose dependencies succeeded instead of
	// stopping at the first failure.
	KeepGoing bool
}

// Executor implements the executor.Executor interface for local execution.
type Executor struct {
	sched  scheduler.Scheduler
	runner executor.Runner
	store  nodestore.Store
	opts   Options
	wg     sync.WaitGroup
}

var _ executor.Executor = (*Executor)(nil)

// New creates a new local executor.
func New(sch scheduler.Scheduler, runner executor.Runner, store nodestore.Store, opts Options) *Executor {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Executor{sched: sch, runner: runner, store: store, opts: opts}
}

// Execute runs every scheduled node. It returns the context error if the
// run was cancelled from outside, and otherwise the failures of all nodes
// that ran and failed.
func (e *Executor) Execute(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	nodes := e.sched.Nodes()
	if len(nodes) == 0 {
		logger.Info("Nothing to run.")
		return nil
	}
	initial := e.sched.Ready()
	if len(initial) == 0 {
		return errors.New("no node is ready to run; the graph has a cycle")
	}
	logger.Info("Starting local run.", "nodes", len(nodes), "jobs", e.opts.Jobs, "keep_going", e.opts.KeepGoing)

	// Every node is sent at most once, so the buffer never fills.
	readyChan := make(chan *node.Node, len(nodes))
	e.wg.Add(len(nodes))
	for _, n := range initial {
		readyChan <- n
	}
	go func() {
		e.wg.Wait()
		close(readyChan)
	}()

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(e.opts.Jobs)
	for n := range readyChan {
		n := n
		grp.Go(func() error {
			return e.process(gctx, n, readyChan)
		})
	}
	// The failures are collected from the nodes below.
	_ = grp.Wait()

	var err error
	counts := make(map[node.Status]int)
	for _, n := range nodes {
		state := n.GetState()
		counts[state]++
		if state == node.StatusFailed {
			err = multierr.Append(err, fmt.Errorf("%s: %w", n.ID(), n.Error))
		}
	}
	logger.Info("Local run finished.",
		"completed", counts[node.StatusCompleted],
		"failed", counts[node.StatusFailed],
		"skipped", counts[node.StatusSkipped])

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
