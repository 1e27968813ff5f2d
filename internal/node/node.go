// Package node holds the runtime state of one build step while a graph is
// run locally.
package node

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/fontpackgen/internal/dag"
	"github.com/vk/fontpackgen/internal/nodeid"
)

// Status is the execution state of a node.
type Status int32

const (
	// StatusPending indicates the node is waiting for its dependencies.
	StatusPending Status = iota
	// StatusRunning indicates a worker is running the node's commands.
	StatusRunning
	// StatusCompleted indicates every command succeeded.
	StatusCompleted
	// StatusFailed indicates a command failed.
	StatusFailed
	// StatusSkipped indicates the node never ran because a dependency failed
	// or the run was cancelled.
	StatusSkipped
)

var statusNames = [...]string{"pending", "running", "completed", "failed", "skipped"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int32(s))
	}
	return statusNames[s]
}

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool {
	return s >= StatusCompleted
}

// Node is a single vertex of a running graph.
type Node struct {
	// id is the structured address of the target.
	id *nodeid.Address
	// Spec is the build step as assembled.
	Spec dag.Node

	// Error stores the failure or skip reason.
	Error error

	// depCount is an atomic counter for unmet dependencies, used by the scheduler.
	depCount atomic.Int32
	// state is the node's current execution state, managed atomically.
	state atomic.Int32
	// finishOnce ensures a node reaches a terminal state exactly once.
	finishOnce sync.Once
}

// New wraps a graph node for execution.
func New(spec dag.Node) (*Node, error) {
	addr, err := nodeid.Parse(spec.ID)
	if err != nil {
		return nil, err
	}
	return &Node{id: addr, Spec: spec}, nil
}

// ID returns the canonical string representation of the node's address.
func (n *Node) ID() string {
	return n.id.String()
}

// Address returns the structured address of the node.
func (n *Node) Address() *nodeid.Address {
	return n.id
}

func (n *Node) SetDepCount(count int32) {
	n.depCount.Store(count)
}

// DepCount atomically returns the current number of unmet dependencies.
func (n *Node) DepCount() int32 {
	return n.depCount.Load()
}

// DecrementDepCount atomically decrements the dependency counter and returns the new value.
func (n *Node) DecrementDepCount() int32 {
	return n.depCount.Add(-1)
}

// SetState atomically sets the node's execution state.
func (n *Node) SetState(s Status) {
	n.state.Store(int32(s))
}

// GetState atomically retrieves the node's execution state.
func (n *Node) GetState() Status {
	return Status(n.state.Load())
}

// Finish moves the node to a terminal state and calls done. It does so only
// once and reports whether this call was the one that finished the node.
func (n *Node) Finish(s Status, err error, done func()) bool {
	var finished bool
	n.finishOnce.Do(func() {
		n.Error = err
		n.SetState(s)
		if done != nil {
			done()
		}
		finished = true
	})
	return finished
}

// Skip marks the node as skipped. It returns true if it was the first time
// this node was finished.
func (n *Node) Skip(err error, done func()) bool {
	return n.Finish(StatusSkipped, err, done)
}
