// Package tables holds the static lookup data shared by the naming engine
// and the dependency resolver: weight and width names, the Latin width
// compression, regional variants, region source files, tag display names,
// OS/2 encodings and the localized-name locales.
//
// All tables are built at package initialization and never mutated. Every
// accessor fails with a fonterr.ConfigurationError on a miss; no accessor
// substitutes a default.
package tables
