package inmemorystore

import (
	"context"
	"slices"
	"sync"

	"github.com/vk/fontpackgen/internal/node"
	"github.com/vk/fontpackgen/internal/nodeid"
	"github.com/vk/fontpackgen/internal/nodestore"
)

// Store is an in-memory implementation of nodestore.Store.
//
// Each node's state is independent and written by one worker at a time,
// so the three sync.Maps see no contention on a single key.
type Store struct {
	states  sync.Map // Key: target path, Value: node.Status
	outputs sync.Map // Key: target path, Value: []byte
	errors  sync.Map // Key: target path, Value: error
}

// New creates a new, empty in-memory node state store.
func New() nodestore.Store {
	return &Store{}
}

// SetStatus updates the execution status of a specific node.
func (s *Store) SetStatus(ctx context.Context, id nodeid.Address, status node.Status) error {
	s.states.Store(id.String(), status)
	return nil
}

// GetStatus retrieves the execution status of a specific node.
// If a status has not been set, it returns StatusPending.
func (s *Store) GetStatus(ctx context.Context, id nodeid.Address) (node.Status, error) {
	status, ok := s.states.Load(id.String())
	if !ok {
		return node.StatusPending, nil
	}
	return status.(node.Status), nil
}

// SetOutput records the command output of a node. The slice is copied.
func (s *Store) SetOutput(ctx context.Context, id nodeid.Address, output []byte) error {
	s.outputs.Store(id.String(), slices.Clone(output))
	return nil
}

// GetOutput retrieves the recorded output of a node.
func (s *Store) GetOutput(ctx context.Context, id nodeid.Address) ([]byte, error) {
	output, ok := s.outputs.Load(id.String())
	if !ok {
		return nil, nil
	}
	return slices.Clone(output.([]byte)), nil
}

// SetError records the failure error of a node.
func (s *Store) SetError(ctx context.Context, id nodeid.Address, nodeErr error) error {
	s.errors.Store(id.String(), nodeErr)
	return nil
}

// GetError retrieves the recorded error of a failed node.
func (s *Store) GetError(ctx context.Context, id nodeid.Address) (error, error) {
	err, ok := s.errors.Load(id.String())
	if !ok {
		return nil, nil
	}
	return err.(error), nil
}
