// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generation lifecycle: load the pack,
// assemble the build graph, write the Makefile and manifest, and optionally
// run the graph locally. It is decoupled from any specific entrypoint.
package app
