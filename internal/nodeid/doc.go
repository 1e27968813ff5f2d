// internal/nodeid/doc.go

/*
Package nodeid provides a structured, type-safe representation for build
node identifiers, based on the canonical format `dir/name.ext`.

Every pipeline stage owns one directory and extension pair, so the pair
(stage, filename) maps to exactly one target path and back, e.g.
`build/unhinted/unspec-WarPixel-CN-Light.otd`. Phony targets such as
`all` or `hint2-300` are bare names without a directory.

This package centralizes all formatting and parsing of target paths.
*/
package nodeid
