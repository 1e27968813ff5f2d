// Package resolve maps a font variant to the source fonts it is assembled
// from.
package resolve

import (
	"fmt"

	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/fonterr"
	"github.com/vk/fontpackgen/internal/tables"
)

// Role names the part a source font plays in a composite font.
type Role string

const (
	// RoleLatin supplies the Latin, Greek and Cyrillic glyphs.
	RoleLatin Role = "Latin"
	// RoleNumeral supplies the tabular digits of game families.
	RoleNumeral Role = "Numeral"
	// RoleCJK supplies the ideographs, kana and hangul.
	RoleCJK Role = "CJK"
)

var roles = []Role{RoleLatin, RoleNumeral, RoleCJK}

// Dependencies holds the resolved source descriptors of one variant. Absent
// roles are nil.
type Dependencies struct {
	Latin   *descriptor.Descriptor
	Numeral *descriptor.Descriptor
	CJK     *descriptor.Descriptor
}

// Get returns the descriptor for a role.
func (d Dependencies) Get(r Role) (descriptor.Descriptor, bool) {
	var p *descriptor.Descriptor
	switch r {
	case RoleLatin:
		p = d.Latin
	case RoleNumeral:
		p = d.Numeral
	case RoleCJK:
		p = d.CJK
	}
	if p == nil {
		return descriptor.Descriptor{}, false
	}
	return *p, true
}

// Roles lists the present roles in the order Latin, Numeral, CJK.
func (d Dependencies) Roles() []Role {
	var res []Role
	for _, r := range roles {
		if _, ok := d.Get(r); ok {
			res = append(res, r)
		}
	}
	return res
}

// ResolveDependency returns the source descriptors d is built from.
//
// Every buildable family takes a Latin source at the compressed width. Game
// families add the condensed Latin source for numerals. Composite families
// add the CJK source of their region, always at the canonical width.
func ResolveDependency(d descriptor.Descriptor) (Dependencies, error) {
	if d.Family.Source() {
		return Dependencies{}, &fonterr.ResolutionError{Family: d.Family.String()}
	}

	var res Dependencies

	latinWidth, err := tables.LatinWidth(d.Width)
	if err != nil {
		return Dependencies{}, err
	}
	latin, err := descriptor.New(descriptor.Descriptor{
		Family: descriptor.LatinSource,
		Weight: d.Weight,
		Width:  latinWidth,
	})
	if err != nil {
		return Dependencies{}, fmt.Errorf("resolving latin source of %s: %w", d, err)
	}
	res.Latin = &latin

	if d.Family.Game() {
		numeral, err := descriptor.New(descriptor.Descriptor{
			Family: descriptor.LatinSource,
			Weight: d.Weight,
			Width:  tables.NumeralWidth,
		})
		if err != nil {
			return Dependencies{}, fmt.Errorf("resolving numeral source of %s: %w", d, err)
		}
		res.Numeral = &numeral
	}

	if d.Family.Composite() {
		source, ok := tables.RegionSource(d.Region)
		if !ok {
			return Dependencies{}, &fonterr.ResolutionError{Family: d.Family.String(), Region: d.Region}
		}
		cjk, err := descriptor.New(descriptor.Descriptor{
			Family: descriptor.CJKSource,
			Weight: d.Weight,
			Width:  tables.CanonicalWidth,
			Region: source,
		})
		if err != nil {
			return Dependencies{}, fmt.Errorf("resolving cjk source of %s: %w", d, err)
		}
		res.CJK = &cjk
	}

	return res, nil
}
