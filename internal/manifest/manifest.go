// Package manifest lists the names every shipped font of a pack carries:
// the output file, the internal artifact it is copied from, and the name
// table strings per locale.
package manifest

import (
	"fmt"
	"io"

	"github.com/vk/fontpackgen/internal/config"
	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/fsutil"
	"github.com/vk/fontpackgen/internal/naming"
	"github.com/vk/fontpackgen/internal/nodeid"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// LocalizedName is one name record.
type LocalizedName struct {
	Locale string `cty:"locale"`
	// Tag is the BCP 47 form of Locale.
	Tag  string `cty:"tag"`
	Name string `cty:"name"`
}

// Font describes one shipped font.
type Font struct {
	Output          string          `cty:"output"`
	Artifact        string          `cty:"artifact"`
	Variant         string          `cty:"variant"`
	Family          []LocalizedName `cty:"family"`
	Subfamily       string          `cty:"subfamily"`
	LegacyPrefix    string          `cty:"legacy_prefix"`
	LegacySubfamily string          `cty:"legacy_subfamily"`
	Friendly        []LocalizedName `cty:"friendly"`
}

// Manifest is the name listing of a pack.
type Manifest struct {
	Version string `cty:"version"`
	Fonts   []Font `cty:"fonts"`
}

// Build lists every shippable weight × instance of the pack, in the order
// the build graph creates their output files.
func Build(pack *config.Pack) (*Manifest, error) {
	m := &Manifest{Version: pack.Version, Fonts: []Font{}}
	for _, w := range pack.Weights {
		for _, inst := range pack.Instances {
			d, err := inst.Descriptor(w)
			if err != nil {
				return nil, err
			}
			font, err := describe(d)
			if err != nil {
				return nil, fmt.Errorf("naming %s: %w", d, err)
			}
			m.Fonts = append(m.Fonts, font)
		}
	}
	return m, nil
}

func describe(d descriptor.Descriptor) (Font, error) {
	filename, err := naming.GenerateFilename(d)
	if err != nil {
		return Font{}, err
	}
	base, err := naming.BaseFilename(d)
	if err != nil {
		return Font{}, err
	}
	family, err := naming.GenerateFamily(d)
	if err != nil {
		return Font{}, err
	}
	subfamily, err := naming.GenerateSubfamily(d)
	if err != nil {
		return Font{}, err
	}
	legacy, err := naming.GenerateLegacySubfamily(d)
	if err != nil {
		return Font{}, err
	}
	friendly, err := naming.GenerateFriendlyFamily(d)
	if err != nil {
		return Font{}, err
	}

	familyNames, err := localized(family)
	if err != nil {
		return Font{}, err
	}
	friendlyNames, err := localized(friendly)
	if err != nil {
		return Font{}, err
	}

	return Font{
		Output:          nodeid.New(nodeid.Alias, base).String(),
		Artifact:        nodeid.New(nodeid.Final, filename).String(),
		Variant:         d.String(),
		Family:          familyNames,
		Subfamily:       subfamily,
		LegacyPrefix:    legacy.Prefix,
		LegacySubfamily: legacy.Style,
		Friendly:        friendlyNames,
	}, nil
}

func localized(names naming.Names) ([]LocalizedName, error) {
	res := make([]LocalizedName, 0, len(names))
	for _, id := range names.Locales() {
		tag, err := id.Tag()
		if err != nil {
			return nil, err
		}
		res = append(res, LocalizedName{Locale: id.String(), Tag: tag.String(), Name: names[id]})
	}
	return res, nil
}

// Marshal renders the manifest as compact JSON with sorted keys, followed
// by a newline.
func Marshal(m *Manifest) ([]byte, error) {
	ty, err := gocty.ImpliedType(*m)
	if err != nil {
		return nil, fmt.Errorf("failed to derive manifest type: %w", err)
	}
	val, err := gocty.ToCtyValue(*m, ty)
	if err != nil {
		return nil, fmt.Errorf("failed to convert manifest: %w", err)
	}
	buf, err := ctyjson.Marshal(val, ty)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return append(buf, '\n'), nil
}

// WriteFile writes the marshalled manifest to path, replacing it atomically.
func WriteFile(path string, m *Manifest) error {
	p, err := Prepare(path, m)
	if err != nil {
		return err
	}
	return p.Commit()
}

// Prepare marshals the manifest into a pending file for path.
func Prepare(path string, m *Manifest) (*fsutil.PendingFile, error) {
	buf, err := Marshal(m)
	if err != nil {
		return nil, err
	}
	return fsutil.PrepareFile(path, func(w io.Writer) error {
		_, err := w.Write(buf)
		return err
	})
}
