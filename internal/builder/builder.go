package builder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/vk/fontpackgen/internal/config"
	"github.com/vk/fontpackgen/internal/ctxlog"
	"github.com/vk/fontpackgen/internal/dag"
	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/makefile"
	"github.com/vk/fontpackgen/internal/naming"
	"github.com/vk/fontpackgen/internal/nodeid"
	"github.com/vk/fontpackgen/internal/resolve"
	"github.com/vk/fontpackgen/internal/tables"
	"seehuhn.de/go/sfnt/os2"
)

// Targets that name no file.
const (
	TargetPhony = ".PHONY"
	TargetAll   = "all"
	TargetClean = "clean"
	TargetHint  = "hint2"
)

// BatchTarget returns the phony target that hints every font of a weight.
func BatchTarget(w os2.Weight) string {
	return fmt.Sprintf("%s-%d", TargetHint, w)
}

// Plan is a finished build description.
type Plan struct {
	Variables []makefile.Variable
	Graph     *dag.Graph
}

// Builder assembles the graph of one pack. It is single use.
type Builder struct {
	pack  *config.Pack
	cmd   commands
	graph *dag.Graph
	// chained records the filenames that already have an unhinted chain.
	chained map[string]bool
}

// New creates a builder for the given pack.
func New(pack *config.Pack) *Builder {
	return &Builder{
		pack:    pack,
		cmd:     commands{tools: pack.Toolchain.WithDefaults()},
		graph:   dag.New(),
		chained: make(map[string]bool),
	}
}

// Build assembles and validates the graph of a pack.
func Build(ctx context.Context, pack *config.Pack) (*Plan, error) {
	return New(pack).Build(ctx)
}

// Build runs every construction phase and returns the validated plan.
func (b *Builder) Build(ctx context.Context) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "weights", len(b.pack.Weights), "instances", len(b.pack.Instances))

	if err := b.housekeeping(); err != nil {
		return nil, err
	}

	instances, err := b.aliases()
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Alias nodes created.", "count", len(instances))

	groups, err := groupHintInstances(instances)
	if err != nil {
		return nil, err
	}
	if err := b.hintBatches(groups); err != nil {
		return nil, err
	}
	if err := b.autohint(groups.latin); err != nil {
		return nil, err
	}
	if err := b.hintStageOne(groups); err != nil {
		return nil, err
	}
	logger.Debug("Build: Hinting nodes created.", "latin", len(groups.latin), "batches", len(groups.batches))

	if err := b.packChains(); err != nil {
		return nil, err
	}
	for _, d := range groups.all() {
		if err := b.chain(d); err != nil {
			return nil, err
		}
	}
	logger.Debug("Build: Unhinted chains created.", "count", len(b.chained))

	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("error validating build graph: %w", err)
	}
	logger.Debug("Build: Validation passed.")

	logger.Info("Build graph assembled.", "nodes", b.graph.Len())
	return &Plan{
		Variables: []makefile.Variable{
			{Name: "VERSION", Value: b.pack.Version},
			{Name: "IDH_JOBS", Value: strconv.Itoa(b.pack.Jobs), Default: true},
		},
		Graph: b.graph,
	}, nil
}

// put inserts a node and names the target in a conflict.
func (b *Builder) put(n dag.Node) error {
	if err := b.graph.Put(n); err != nil {
		if errors.Is(err, dag.ErrConflict) {
			return fmt.Errorf("two build steps produce %s: %w", n.ID, err)
		}
		return err
	}
	return nil
}

func (b *Builder) housekeeping() error {
	if err := b.put(dag.Node{ID: TargetPhony, Deps: []string{TargetAll, TargetClean, TargetHint}}); err != nil {
		return err
	}
	if err := b.put(dag.Node{ID: TargetAll, Phony: true}); err != nil {
		return err
	}
	return b.put(dag.Node{
		ID:       TargetClean,
		Commands: []string{"-rm -rf build/", "-rm -rf out/??*-???/"},
		Phony:    true,
	})
}

// aliases creates the output copy of every shippable weight × instance and
// returns their descriptors in order.
func (b *Builder) aliases() ([]descriptor.Descriptor, error) {
	var res []descriptor.Descriptor
	for _, w := range b.pack.Weights {
		for _, inst := range b.pack.Instances {
			d, err := inst.Descriptor(w)
			if err != nil {
				return nil, fmt.Errorf("instance %s %s %s %d: %w", inst.Encoding, inst.Family, inst.Region, inst.Width, err)
			}
			filename, err := naming.GenerateFilename(d)
			if err != nil {
				return nil, err
			}
			base, err := naming.BaseFilename(d)
			if err != nil {
				return nil, err
			}

			alias := nodeid.New(nodeid.Alias, base).String()
			err = b.put(dag.Node{
				ID:       alias,
				Deps:     []string{nodeid.New(nodeid.Final, filename).String()},
				Commands: []string{mkdir(nodeid.Alias), "cp $^ $@"},
			})
			if err != nil {
				return nil, err
			}
			if err := b.graph.Append(TargetAll, alias); err != nil {
				return nil, err
			}
			res = append(res, d)
		}
	}
	return res, nil
}

// packChains creates the unhinted chain of every plain Sans and UI variant
// of the pack, whether or not it is shipped.
func (b *Builder) packChains() error {
	for _, family := range []descriptor.Family{descriptor.Sans, descriptor.UI} {
		for _, w := range b.pack.Weights {
			for _, width := range tables.PackWidths() {
				for _, region := range tables.Regions() {
					for _, features := range powerset(b.pack.Features) {
						d, err := descriptor.New(descriptor.Descriptor{
							Family:   family,
							Weight:   w,
							Width:    width,
							Region:   region,
							Features: features,
							Encoding: tables.Unspecified,
						})
						if err != nil {
							return err
						}
						if err := b.chain(d); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

// chain creates the dump, merge and rebuild nodes of an unhinted font.
func (b *Builder) chain(d descriptor.Descriptor) error {
	filename, err := naming.GenerateFilename(d)
	if err != nil {
		return err
	}
	if b.chained[filename] {
		return nil
	}

	deps, err := resolve.ResolveDependency(d)
	if err != nil {
		return err
	}

	merge := nodeid.New(nodeid.Merge, filename).String()
	err = b.put(dag.Node{
		ID:       nodeid.New(nodeid.Unhinted, filename).String(),
		Deps:     []string{merge},
		Commands: []string{b.cmd.build()},
	})
	if err != nil {
		return err
	}

	var dumps []dag.Node
	var mergeDeps []string
	for _, role := range deps.Roles() {
		dep, _ := deps.Get(role)
		dump, err := b.dumpNode(dep)
		if err != nil {
			return fmt.Errorf("%s dependency of %s: %w", role, filename, err)
		}
		if slices.Contains(mergeDeps, dump.ID) {
			continue
		}
		mergeDeps = append(mergeDeps, dump.ID)
		dumps = append(dumps, dump)
	}

	mergeCmd, err := b.cmd.merge(d)
	if err != nil {
		return err
	}
	err = b.put(dag.Node{
		ID:       merge,
		Deps:     mergeDeps,
		Commands: []string{mkdir(nodeid.Merge), mergeCmd},
	})
	if err != nil {
		return err
	}

	for _, dump := range dumps {
		if err := b.put(dump); err != nil {
			return err
		}
	}

	b.chained[filename] = true
	return nil
}

// dumpNode returns the node that dumps a source font to an editable
// document. Its ID depends only on the source filename.
func (b *Builder) dumpNode(d descriptor.Descriptor) (dag.Node, error) {
	filename, err := naming.GenerateFilename(d)
	if err != nil {
		return dag.Node{}, err
	}

	var source, dump nodeid.Stage
	var prefix string
	switch d.Family {
	case descriptor.LatinSource:
		source, dump, prefix = nodeid.LatinSource, nodeid.LatinDump, "latn"
	case descriptor.CJKSource:
		source, dump, prefix = nodeid.CJKSource, nodeid.CJKDump, "hani"
	default:
		return dag.Node{}, fmt.Errorf("family %s has no source font", d.Family)
	}

	return dag.Node{
		ID:       nodeid.New(dump, filename).String(),
		Deps:     []string{nodeid.New(source, filename).String()},
		Commands: []string{mkdir(dump), b.cmd.dump(prefix)},
	}, nil
}

// powerset returns every subset of tags. Subsets keep the order of tags and
// are listed in the order they are built up: the empty set, then each new
// tag appended to every subset so far.
func powerset(tags []string) [][]string {
	res := [][]string{{}}
	for _, tag := range tags {
		n := len(res)
		for _, subset := range res[:n] {
			next := make([]string, len(subset), len(subset)+1)
			copy(next, subset)
			res = append(res, append(next, tag))
		}
	}
	return res
}
