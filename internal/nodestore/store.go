// Package nodestore defines the interface for storing mutable execution
// state (status, output, errors) of the nodes of a locally run build graph.
package nodestore

import (
	"context"

	"github.com/vk/fontpackgen/internal/node"
	"github.com/vk/fontpackgen/internal/nodeid"
)

// Store keeps the outcome of every node of a run.
//
// Implementations must be safe for concurrent use: workers update
// different nodes at the same time.
type Store interface {
	// SetStatus updates the execution status of a node.
	SetStatus(ctx context.Context, id nodeid.Address, status node.Status) error

	// GetStatus retrieves the current execution status of a node. It returns
	// StatusPending if no status has been set for this node yet.
	GetStatus(ctx context.Context, id nodeid.Address) (node.Status, error)

	// SetOutput records the combined command output of a node.
	SetOutput(ctx context.Context, id nodeid.Address, output []byte) error

	// GetOutput retrieves the recorded output, or nil.
	GetOutput(ctx context.Context, id nodeid.Address) ([]byte, error)

	// SetError records why a node failed or was skipped.
	SetError(ctx context.Context, id nodeid.Address, err error) error

	// GetError retrieves the recorded error, or nil.
	GetError(ctx context.Context, id nodeid.Address) (error, error)
}
