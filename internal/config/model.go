package config

import (
	"fmt"

	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/fonterr"
	"github.com/vk/fontpackgen/internal/tables"
	"go.uber.org/multierr"
	"seehuhn.de/go/sfnt/os2"
)

// Pack is the unified, format-agnostic representation of a font pack
// configuration.
type Pack struct {
	// Version is written to the VERSION variable of the Makefile.
	Version string
	// Weights are the pack weights, in configuration order.
	Weights []os2.Weight
	// Features are the optional feature tags; every subset is built.
	Features []string
	// Instances are the shippable outputs, expanded over every weight.
	Instances []Instance
	// Jobs is the default parallelism of the batch hinting stage.
	Jobs int
	// Toolchain holds the external commands.
	Toolchain Toolchain
}

// Instance is one shippable (encoding, family, region, width) combination.
type Instance struct {
	Encoding tables.Encoding
	Family   descriptor.Family
	// Region is empty for the Latin family.
	Region string
	Width  os2.Width
}

// Descriptor returns the descriptor of the instance at the given weight.
func (i Instance) Descriptor(weight os2.Weight) (descriptor.Descriptor, error) {
	return descriptor.New(descriptor.Descriptor{
		Family:   i.Family,
		Weight:   weight,
		Width:    i.Width,
		Region:   i.Region,
		Encoding: i.Encoding,
	})
}

// Toolchain names the external programs the generated Makefile invokes.
type Toolchain struct {
	Python      string
	OtfccDump   string
	OtfccBuild  string
	TTFAutohint string
	// Chlorophytum is the command prefix of the instruction hinter.
	Chlorophytum string
	// Merge and SetEncoding are the scripts run by Python.
	Merge       string
	SetEncoding string
}

// DefaultToolchain returns the commands used when a configuration does not
// override them.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Python:       "python",
		OtfccDump:    "otfccdump",
		OtfccBuild:   "otfccbuild",
		TTFAutohint:  "ttfautohint",
		Chlorophytum: "node node_modules/@chlorophytum/cli/bin/_startup",
		Merge:        "merge.py",
		SetEncoding:  "set-encoding.py",
	}
}

// WithDefaults returns a copy of t with empty fields set from
// DefaultToolchain.
func (t Toolchain) WithDefaults() Toolchain {
	def := DefaultToolchain()
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&t.Python, def.Python)
	fill(&t.OtfccDump, def.OtfccDump)
	fill(&t.OtfccBuild, def.OtfccBuild)
	fill(&t.TTFAutohint, def.TTFAutohint)
	fill(&t.Chlorophytum, def.Chlorophytum)
	fill(&t.Merge, def.Merge)
	fill(&t.SetEncoding, def.SetEncoding)
	return t
}

const (
	DefaultVersion = "1.000"
	DefaultJobs    = 8
)

// Default returns the stock pack: one Light weight, no features, Simplified
// and Traditional Chinese Sans in two widths and the Classical UI family.
func Default() *Pack {
	return &Pack{
		Version:  DefaultVersion,
		Weights:  []os2.Weight{300},
		Features: []string{},
		Instances: []Instance{
			{Encoding: tables.GBK, Family: descriptor.Sans, Region: "CN", Width: 3},
			{Encoding: tables.GBK, Family: descriptor.Sans, Region: "CN", Width: 5},
			{Encoding: tables.Big5, Family: descriptor.Sans, Region: "TW", Width: 3},
			{Encoding: tables.Big5, Family: descriptor.Sans, Region: "TW", Width: 5},
			{Encoding: tables.Unspecified, Family: descriptor.UI, Region: "CL", Width: 3},
			{Encoding: tables.Unspecified, Family: descriptor.UI, Region: "CL", Width: 7},
		},
		Jobs:      DefaultJobs,
		Toolchain: DefaultToolchain(),
	}
}

// Validate checks the pack as a whole and reports every problem at once.
func (p *Pack) Validate() error {
	var err error
	if p.Version == "" {
		err = multierr.Append(err, fmt.Errorf("version cannot be empty"))
	}
	if len(p.Weights) == 0 {
		err = multierr.Append(err, fmt.Errorf("at least one weight is required"))
	}
	seenWeights := make(map[os2.Weight]bool, len(p.Weights))
	for _, w := range p.Weights {
		if _, e := tables.WeightName(w); e != nil {
			err = multierr.Append(err, e)
		}
		if seenWeights[w] {
			err = multierr.Append(err, fmt.Errorf("weight %d listed twice", w))
		}
		seenWeights[w] = true
	}
	seenFeatures := make(map[string]bool, len(p.Features))
	for _, f := range p.Features {
		if !tables.IsFeature(f) {
			err = multierr.Append(err, fonterr.Lookup("feature", f))
		}
		if seenFeatures[f] {
			err = multierr.Append(err, fmt.Errorf("feature %q listed twice", f))
		}
		seenFeatures[f] = true
	}
	if p.Jobs < 1 {
		err = multierr.Append(err, fmt.Errorf("jobs must be positive, got %d", p.Jobs))
	}
	if len(p.Weights) > 0 {
		for i, inst := range p.Instances {
			if inst.Family.Source() {
				err = multierr.Append(err, fmt.Errorf("instance %d: source family %s cannot be shipped", i, inst.Family))
				continue
			}
			if _, e := inst.Descriptor(p.Weights[0]); e != nil {
				err = multierr.Append(err, fmt.Errorf("instance %d (%s %s %s %d): %w", i, inst.Encoding, inst.Family, inst.Region, inst.Width, e))
			}
		}
	}
	return err
}
