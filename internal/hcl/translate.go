package hcl

import (
	"github.com/vk/fontpackgen/internal/config"
	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/tables"
	"seehuhn.de/go/sfnt/os2"
)

// translatePack applies a `pack` block on top of the defaults.
func translatePack(b *packBlock, p *config.Pack) {
	if b.Version != nil {
		p.Version = *b.Version
	}
	p.Weights = make([]os2.Weight, len(b.Weights))
	for i, w := range b.Weights {
		p.Weights[i] = os2.Weight(w)
	}
	p.Features = append([]string{}, b.Features...)
	if b.Jobs != nil {
		p.Jobs = *b.Jobs
	}
}

// translateInstance converts an `instance` block into the agnostic model.
func translateInstance(b *instanceBlock) (config.Instance, error) {
	enc, err := tables.ParseEncoding(b.Encoding)
	if err != nil {
		return config.Instance{}, err
	}
	family, err := descriptor.ParseFamily(b.Family)
	if err != nil {
		return config.Instance{}, err
	}
	inst := config.Instance{
		Encoding: enc,
		Family:   family,
		Width:    os2.Width(b.Width),
	}
	if b.Region != nil {
		inst.Region = *b.Region
	}
	return inst, nil
}

// translateToolchain applies a `toolchain` block on top of the defaults.
func translateToolchain(b *toolchainBlock, t *config.Toolchain) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.Python, b.Python)
	set(&t.OtfccDump, b.OtfccDump)
	set(&t.OtfccBuild, b.OtfccBuild)
	set(&t.TTFAutohint, b.TTFAutohint)
	set(&t.Chlorophytum, b.Chlorophytum)
	set(&t.Merge, b.Merge)
	set(&t.SetEncoding, b.SetEncoding)
}
