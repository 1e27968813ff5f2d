// Package config defines the format-agnostic configuration model of a font
// pack, along with the Loader interface for reading it from various
// sources.
//
// The `config.Pack` is the single source of truth for the `builder` and
// `manifest` packages. Concrete loaders, such as for HCL, are provided in
// separate packages.
package config
