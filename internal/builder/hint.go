package builder

import (
	"github.com/vk/fontpackgen/internal/dag"
	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/naming"
	"github.com/vk/fontpackgen/internal/nodeid"
	"github.com/vk/fontpackgen/internal/tables"
	"seehuhn.de/go/sfnt/os2"
)

// hintEntry is one font to hint, normalized to the unspecified encoding.
type hintEntry struct {
	desc     descriptor.Descriptor
	filename string
}

// batch is every font of one pack weight that goes through the instruction
// hinter together.
type batch struct {
	weight  os2.Weight
	entries []hintEntry
}

type hintGroups struct {
	latin   []hintEntry
	batches []*batch
}

// all returns every grouped descriptor, Latin group first.
func (g hintGroups) all() []descriptor.Descriptor {
	var res []descriptor.Descriptor
	for _, e := range g.latin {
		res = append(res, e.desc)
	}
	for _, bt := range g.batches {
		for _, e := range bt.entries {
			res = append(res, e.desc)
		}
	}
	return res
}

// groupHintInstances splits the shippable descriptors into the Latin group
// and one batch per weight, dropping duplicates. Batches follow the order in
// which their weights first appear.
func groupHintInstances(instances []descriptor.Descriptor) (hintGroups, error) {
	var groups hintGroups
	byWeight := make(map[os2.Weight]*batch)
	seen := make(map[string]bool)

	for _, d := range instances {
		d = d.WithEncoding(tables.Unspecified)
		filename, err := naming.GenerateFilename(d)
		if err != nil {
			return hintGroups{}, err
		}
		if seen[filename] {
			continue
		}
		seen[filename] = true

		entry := hintEntry{desc: d, filename: filename}
		if d.Family == descriptor.Latin {
			groups.latin = append(groups.latin, entry)
			continue
		}
		bt, ok := byWeight[d.Weight]
		if !ok {
			bt = &batch{weight: d.Weight}
			byWeight[d.Weight] = bt
			groups.batches = append(groups.batches, bt)
		}
		bt.entries = append(bt.entries, entry)
	}
	return groups, nil
}

// hintBatches creates the aggregate hint target, one batch target per
// weight and the per-font stages after hinting: instruct, integrate, final
// rebuild and the encoding variants.
func (b *Builder) hintBatches(groups hintGroups) error {
	if err := b.put(dag.Node{ID: TargetHint, Phony: true}); err != nil {
		return err
	}

	for _, bt := range groups.batches {
		target := BatchTarget(bt.weight)
		filenames := make([]string, len(bt.entries))
		dumps := make([]string, len(bt.entries))
		for i, e := range bt.entries {
			filenames[i] = e.filename
			dumps[i] = nodeid.New(nodeid.HintDump, e.filename).String()
		}

		err := b.put(dag.Node{
			ID:       target,
			Deps:     dumps,
			Commands: []string{b.cmd.hint(bt.weight, filenames)},
			Phony:    true,
		})
		if err != nil {
			return err
		}
		if err := b.graph.Append(TargetHint, target); err != nil {
			return err
		}
		if err := b.graph.Append(TargetPhony, target); err != nil {
			return err
		}

		for _, e := range bt.entries {
			if err := b.hintedStages(bt.weight, target, e); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder) hintedStages(w os2.Weight, batchTarget string, e hintEntry) error {
	f := e.filename
	integrate := nodeid.New(nodeid.Integrate, f).String()
	nodes := []dag.Node{
		{
			ID:       nodeid.New(nodeid.Final, f).String(),
			Deps:     []string{integrate},
			Commands: []string{b.cmd.build()},
		},
		{
			ID:       integrate,
			Deps:     []string{nodeid.New(nodeid.Instruct, f).String()},
			Commands: []string{mkdir(nodeid.Integrate), b.cmd.integrate(w, f)},
		},
		{
			ID:       nodeid.New(nodeid.Instruct, f).String(),
			Deps:     []string{nodeid.New(nodeid.HintData, f).String()},
			Commands: []string{b.cmd.instruct(w, f)},
		},
		// Produced by the batch; the node only orders it after the batch.
		{
			ID:   nodeid.New(nodeid.HintData, f).String(),
			Deps: []string{batchTarget},
		},
		{
			ID:       nodeid.New(nodeid.HintDump, f).String(),
			Deps:     []string{nodeid.New(nodeid.Hint1, f).String()},
			Commands: []string{mkdir(nodeid.HintDump), b.cmd.hintDump()},
		},
	}
	for _, n := range nodes {
		if err := b.put(n); err != nil {
			return err
		}
	}
	return b.encodingVariants(e.desc, integrate)
}

// encodingVariants rebrands a hinted composite font to every other encoding.
// The glyph data is untouched; only the code page hints change. Unhinted
// composites get no variants: they never produce the build/nowar document
// a variant is derived from.
func (b *Builder) encodingVariants(d descriptor.Descriptor, hinted string) error {
	if !d.Family.Composite() {
		return nil
	}
	for _, enc := range tables.RebrandEncodings() {
		variant := d.WithEncoding(enc)
		filename, err := naming.GenerateFilename(variant)
		if err != nil {
			return err
		}
		cmd, err := b.cmd.setEncoding(variant)
		if err != nil {
			return err
		}
		document := nodeid.New(nodeid.Integrate, filename).String()
		err = b.put(dag.Node{
			ID:       nodeid.New(nodeid.Final, filename).String(),
			Deps:     []string{document},
			Commands: []string{b.cmd.build()},
		})
		if err != nil {
			return err
		}
		err = b.put(dag.Node{
			ID:       document,
			Deps:     []string{hinted},
			Commands: []string{cmd},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// autohint hints the Latin group in a single step from the unhinted font.
func (b *Builder) autohint(latin []hintEntry) error {
	for _, e := range latin {
		err := b.put(dag.Node{
			ID:       nodeid.New(nodeid.Final, e.filename).String(),
			Deps:     []string{nodeid.New(nodeid.Unhinted, e.filename).String()},
			Commands: []string{mkdir(nodeid.Final), b.cmd.autohint()},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// hintStageOne autohints every batch font before the instruction hinter
// sees it.
func (b *Builder) hintStageOne(groups hintGroups) error {
	for _, bt := range groups.batches {
		for _, e := range bt.entries {
			err := b.put(dag.Node{
				ID:       nodeid.New(nodeid.Hint1, e.filename).String(),
				Deps:     []string{nodeid.New(nodeid.Unhinted, e.filename).String()},
				Commands: []string{mkdir(nodeid.Hint1), b.cmd.autohint()},
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
