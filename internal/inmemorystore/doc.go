// Package inmemorystore provides a thread-safe, in-memory implementation
// of the nodestore.Store interface. It backs a single local run; nothing is
// persisted.
package inmemorystore
