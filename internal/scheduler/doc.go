// Package scheduler decides which nodes of a build graph are ready to run.
//
// It restricts the graph to the closure of the requested goals, counts the
// unmet dependencies of every node in it and hands out nodes as their
// counts reach zero. Dependencies without a node are source files and are
// considered satisfied.
package scheduler
