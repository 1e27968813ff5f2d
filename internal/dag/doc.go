// Package dag holds the build graph: an ordered set of nodes, each with the
// targets it depends on and the commands that produce it.
//
// Nodes keep their first-insertion order so that everything derived from
// the graph, the serialized Makefile in particular, is byte-stable.
// Inserting an identical node twice is a no-op; this is how shared
// intermediate nodes are deduplicated.
package dag
