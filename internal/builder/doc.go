/*
Package builder is responsible for the construction of the font pack build
graph. It acts as the bridge between the pack configuration (defined in the
'config' package) and the serialized Makefile (the 'makefile' package).

The primary artifact produced by this package is a validated *Plan: the make
variables plus a *dag.Graph.

The graph construction is a multi-phase process:

 1. Housekeeping: the `.PHONY`, `all` and `clean` targets and the VERSION
    and IDH_JOBS variables.

 2. Shippable instances: every weight × instance pair becomes an alias node
    that copies the fully qualified artifact to its short output name. The
    descriptors behind the aliases are the hint instances.

 3. Hinting: hint instances are normalized to the unspecified encoding and
    split into the Latin group, which is autohinted in one step, and one
    batch per pack weight, which runs through the instruction hinter as a
    single invocation sharing one cache. Hinted composite fonts are then
    rebranded to every other encoding.

 4. Unhinted chains: every plain Sans and UI variant of the pack, plus every
    hint instance outside that set, gets its source dumps, merge and rebuild
    nodes. Dump nodes are keyed by the dependency filename and so are shared
    by every variant that resolves to the same source.

 5. Validation: every dependency must name a node or a source file, and the
    graph must be acyclic.

Node insertion is idempotent, so the phases may revisit shared nodes freely.
Inserting a different node under an existing target fails the build.
*/
package builder
