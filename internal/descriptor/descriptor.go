// Package descriptor defines the variant descriptor: the record of font
// axes (family, weight, width, region, features, encoding, italic) that
// every name, dependency and build node is derived from.
//
// Descriptors are validated once, in New. Code that receives a Descriptor
// can index any lookup table with its fields without probing.
package descriptor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vk/fontpackgen/internal/fonterr"
	"github.com/vk/fontpackgen/internal/tables"
	"go.uber.org/multierr"
	"seehuhn.de/go/sfnt/os2"
)

// Descriptor names one font variant.
//
// Region is only set for composite families (a region code) and for
// CJKSource (the source file family); for every other family it is empty,
// which is a distinct state and not a default region.
type Descriptor struct {
	Family   Family
	Weight   os2.Weight
	Width    os2.Width
	Region   string
	Features []string
	Encoding tables.Encoding
	Italic   bool
}

// New validates d and returns a normalized copy. All table misses are
// reported together, each as a fonterr.ConfigurationError.
func New(d Descriptor) (Descriptor, error) {
	var err error

	if d.Family < Sans || d.Family > CJKSource {
		err = multierr.Append(err, fonterr.Lookup("family", int(d.Family)))
	}
	if _, e := tables.WeightName(d.Weight); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := tables.WidthName(d.Width); e != nil {
		err = multierr.Append(err, e)
	}

	switch {
	case d.Family.Composite():
		if !tables.IsRegion(d.Region) {
			err = multierr.Append(err, fonterr.Lookup("region", d.Region))
		}
	case d.Family == CJKSource:
		if !tables.IsSource(d.Region) {
			err = multierr.Append(err, fonterr.Lookup("source region", d.Region))
		}
	default:
		if d.Region != "" {
			err = multierr.Append(err, fmt.Errorf("family %s does not take a region, got %q", d.Family, d.Region))
		}
	}

	if d.Family.Source() && len(d.Features) > 0 {
		err = multierr.Append(err, fmt.Errorf("source family %s does not take features", d.Family))
	}
	seen := make(map[string]struct{}, len(d.Features))
	for _, tag := range d.Features {
		if !tables.IsFeature(tag) {
			err = multierr.Append(err, fonterr.Lookup("feature", tag))
			continue
		}
		if _, dup := seen[tag]; dup {
			err = multierr.Append(err, fmt.Errorf("feature %q listed twice", tag))
		}
		seen[tag] = struct{}{}
	}

	if d.Encoding == "" {
		d.Encoding = tables.Unspecified
	}
	if _, e := tables.ParseEncoding(string(d.Encoding)); e != nil {
		err = multierr.Append(err, e)
	} else if !d.Family.Composite() && d.Encoding != tables.Unspecified {
		err = multierr.Append(err, fmt.Errorf("family %s cannot be rebranded to encoding %s", d.Family, d.Encoding))
	}

	if err != nil {
		return Descriptor{}, err
	}

	d.Features = slices.Clone(d.Features)
	if d.Features == nil {
		d.Features = []string{}
	}
	return d, nil
}

// MustNew is like New but panics on an invalid descriptor. It is meant for
// descriptors built from constants.
func MustNew(d Descriptor) Descriptor {
	res, err := New(d)
	if err != nil {
		panic(err)
	}
	return res
}

// WithEncoding returns a copy of d rebranded to e. Only composite families
// can be rebranded; other families are returned unchanged.
func (d Descriptor) WithEncoding(e tables.Encoding) Descriptor {
	if !d.Family.Composite() {
		return d
	}
	d.Features = slices.Clone(d.Features)
	d.Encoding = e
	return d
}

// Tags returns the tags that qualify the family name: the region for
// composite families, then the features in configuration order.
func (d Descriptor) Tags() []string {
	var tags []string
	if d.Family.Composite() {
		tags = append(tags, d.Region)
	}
	return append(tags, d.Features...)
}

// Equal reports whether both descriptors name the same variant.
func (d Descriptor) Equal(o Descriptor) bool {
	return d.Family == o.Family &&
		d.Weight == o.Weight &&
		d.Width == o.Width &&
		d.Region == o.Region &&
		slices.Equal(d.Features, o.Features) &&
		d.Encoding == o.Encoding &&
		d.Italic == o.Italic
}

// String formats d for logs.
func (d Descriptor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/%d/%d", d.Family, d.Weight, d.Width)
	if d.Region != "" {
		sb.WriteString("/" + d.Region)
	}
	if len(d.Features) > 0 {
		sb.WriteString("/" + strings.Join(d.Features, ","))
	}
	if d.Family.Composite() {
		sb.WriteString("/" + string(d.Encoding))
	}
	if d.Italic {
		sb.WriteString("/italic")
	}
	return sb.String()
}
