// Package naming turns descriptors into the names a font carries: family
// names per locale, the style (subfamily) string, the legacy two-field style
// record and the filename that doubles as a build node key.
//
// All functions are pure. A lookup miss is reported as a
// fonterr.ConfigurationError; no default is ever substituted.
package naming

import (
	"maps"
	"slices"
	"strings"

	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/fonterr"
	"github.com/vk/fontpackgen/internal/tables"
)

// Names maps a name-table locale to a name.
type Names map[tables.LocaleID]string

// Default returns the non-localized name.
func (n Names) Default() string {
	return n[tables.DefaultLocale]
}

// Locales returns the locales present in n in ascending order.
func (n Names) Locales() []tables.LocaleID {
	var locales []tables.LocaleID
	for l := range n {
		locales = append(locales, l)
	}
	slices.Sort(locales)
	return locales
}

// localizedFamilies only carries the default locale for now. Regional
// locales fall back to it when the region cannot render their script.
var localizedFamilies = map[descriptor.Family]Names{
	descriptor.Sans:     {tables.DefaultLocale: "War Pixel"},
	descriptor.UI:       {tables.DefaultLocale: "War Pixel UI"},
	descriptor.GameSans: {tables.DefaultLocale: "War Pixel Warcraft"},
	descriptor.GameUI:   {tables.DefaultLocale: "War Pixel Warcraft UI"},
	descriptor.Latin:    {tables.DefaultLocale: "War Pixel UI LCG"},
}

var baseFilenames = map[descriptor.Family]string{
	descriptor.Sans:     "WarPixel",
	descriptor.UI:       "WarPixelUI",
	descriptor.GameSans: "WarPixelWarcraft",
	descriptor.GameUI:   "WarPixelWarcraftUI",
	descriptor.Latin:    "WarPixelLCG",
}

const latinSourceFilename = "NotoSans"

func localizedFamily(d descriptor.Descriptor) (Names, error) {
	base, ok := localizedFamilies[d.Family]
	if !ok {
		return nil, fonterr.Lookup("named family", d.Family.String())
	}
	res := maps.Clone(base)
	if !d.Family.Composite() {
		return res, nil
	}

	for _, l := range tables.RegionalLocales() {
		ok, err := tables.Supports(d.Region, l.Orthography)
		if err != nil {
			return nil, err
		}
		if !ok {
			res[l.ID] = res.Default()
		}
	}
	return res, nil
}

func tagNames(d descriptor.Descriptor) ([]string, error) {
	tags := d.Tags()
	res := make([]string, len(tags))
	for i, tag := range tags {
		name, err := tables.TagName(tag)
		if err != nil {
			return nil, err
		}
		res[i] = name
	}
	return res, nil
}

// GenerateFamily returns the family name for every locale that has one.
// Tag display names are appended region first, then features in order.
func GenerateFamily(d descriptor.Descriptor) (Names, error) {
	names, err := localizedFamily(d)
	if err != nil {
		return nil, err
	}
	tags, err := tagNames(d)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return names, nil
	}
	suffix := " " + strings.Join(tags, " ")
	for id, name := range names {
		names[id] = name + suffix
	}
	return names, nil
}

// GenerateSubfamily returns the style string, e.g. "Light",
// "Condensed Bold Italic" or "Regular".
func GenerateSubfamily(d descriptor.Descriptor) (string, error) {
	width, err := tables.WidthName(d.Width)
	if err != nil {
		return "", err
	}
	weight, err := tables.WeightName(d.Weight)
	if err != nil {
		return "", err
	}

	var style string
	if d.Weight == 400 {
		style = width
	} else {
		style = join(width, weight)
	}
	if d.Italic {
		return join(style, "Italic"), nil
	}
	if style == "" {
		return "Regular", nil
	}
	return style, nil
}

// LegacySubfamily is the style split over the two fields of a legacy
// style record: a prefix folded into the family name and a suffix from
// the four RIBBI styles.
type LegacySubfamily struct {
	Prefix string
	Style  string
}

// GenerateLegacySubfamily returns the legacy style record. Weights 400 and
// 700 map onto Regular and Bold; every other weight moves into the prefix.
// Only 700 has a combined italic style.
func GenerateLegacySubfamily(d descriptor.Descriptor) (LegacySubfamily, error) {
	width, err := tables.WidthName(d.Width)
	if err != nil {
		return LegacySubfamily{}, err
	}
	weight, err := tables.WeightName(d.Weight)
	if err != nil {
		return LegacySubfamily{}, err
	}

	switch {
	case d.Italic && d.Weight == 400:
		return LegacySubfamily{Prefix: width, Style: "Italic"}, nil
	case d.Italic && d.Weight == 700:
		return LegacySubfamily{Prefix: width, Style: "Bold Italic"}, nil
	case d.Italic:
		return LegacySubfamily{Prefix: join(width, weight), Style: "Italic"}, nil
	case d.Weight == 400 || d.Weight == 700:
		return LegacySubfamily{Prefix: width, Style: weight}, nil
	default:
		return LegacySubfamily{Prefix: join(width, weight), Style: "Regular"}, nil
	}
}

// GenerateFriendlyFamily returns the full name, family plus style, for every
// locale that has a family name.
func GenerateFriendlyFamily(d descriptor.Descriptor) (Names, error) {
	names, err := GenerateFamily(d)
	if err != nil {
		return nil, err
	}
	style, err := GenerateSubfamily(d)
	if err != nil {
		return nil, err
	}
	for id, name := range names {
		names[id] = name + " " + style
	}
	return names, nil
}

// EncodingPrefix returns "<encoding>-" for brandable families and the empty
// string otherwise.
func EncodingPrefix(d descriptor.Descriptor) string {
	if !d.Family.Composite() {
		return ""
	}
	return string(d.Encoding) + "-"
}

// BaseFilename returns the filename without the encoding prefix. It is the
// name shipped to users.
func BaseFilename(d descriptor.Descriptor) (string, error) {
	var family string
	switch d.Family {
	case descriptor.LatinSource:
		family = latinSourceFilename
	case descriptor.CJKSource:
		if !tables.IsSource(d.Region) {
			return "", fonterr.Lookup("source region", d.Region)
		}
		family = d.Region
	default:
		base, ok := baseFilenames[d.Family]
		if !ok {
			return "", fonterr.Lookup("family", d.Family.String())
		}
		family = base
		for _, tag := range d.Tags() {
			if _, err := tables.TagName(tag); err != nil {
				return "", err
			}
		}
		if tags := d.Tags(); len(tags) > 0 {
			family += "-" + strings.Join(tags, ",")
		}
	}

	style, err := GenerateSubfamily(d)
	if err != nil {
		return "", err
	}
	return family + "-" + strings.ReplaceAll(style, " ", ""), nil
}

// GenerateFilename returns the unique filename of d, e.g.
// "gbk-WarPixel-CN-Light". It is injective over valid descriptors and is
// used both as a build node key and as an output path.
func GenerateFilename(d descriptor.Descriptor) (string, error) {
	base, err := BaseFilename(d)
	if err != nil {
		return "", err
	}
	return EncodingPrefix(d) + base, nil
}

func join(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
