package tables

import (
	"slices"

	"github.com/vk/fontpackgen/internal/fonterr"
	"seehuhn.de/go/sfnt/os2"
)

var weightNames = map[os2.Weight]string{
	100:                 "Thin",
	200:                 "ExtraLight",
	300:                 "Light",
	os2.WeightNormal:    "Regular",
	os2.WeightMedium:    "Medium",
	600:                 "SemiBold",
	os2.WeightBold:      "Bold",
	os2.WeightExtraBold: "ExtraBold",
	900:                 "Black",
}

// The normal width has no display name.
var widthNames = map[os2.Width]string{
	os2.WidthCondensed:     "Condensed",
	os2.WidthSemiCondensed: "SemiCondensed",
	os2.WidthNormal:        "",
	os2.WidthExpanded:      "Extended",
}

// latinWidths collapses the composite widths onto the three widths the
// Latin source family is shipped in.
var latinWidths = map[os2.Width]os2.Width{
	os2.WidthCondensed:     os2.WidthCondensed,
	os2.WidthSemiCondensed: os2.WidthCondensed,
	os2.WidthNormal:        os2.WidthSemiCondensed,
	os2.WidthExpanded:      os2.WidthNormal,
}

// PackWidths are the widths every composite family is expanded over.
var packWidths = []os2.Width{os2.WidthCondensed, os2.WidthNormal, os2.WidthExpanded}

const (
	// CanonicalWidth is the width CJK sources are always taken from.
	CanonicalWidth = os2.WidthNormal
	// NumeralWidth is the width of the Latin source used for numerals.
	NumeralWidth = os2.WidthCondensed
)

// WeightName returns the display name of a weight.
func WeightName(w os2.Weight) (string, error) {
	name, ok := weightNames[w]
	if !ok {
		return "", fonterr.Lookup("weight", int(w))
	}
	return name, nil
}

// WidthName returns the display name of a width. The normal width has an
// empty name.
func WidthName(w os2.Width) (string, error) {
	name, ok := widthNames[w]
	if !ok {
		return "", fonterr.Lookup("width", int(w))
	}
	return name, nil
}

// LatinWidth maps a composite width to the width of its Latin source.
func LatinWidth(w os2.Width) (os2.Width, error) {
	lw, ok := latinWidths[w]
	if !ok {
		return 0, fonterr.Lookup("latin width", int(w))
	}
	return lw, nil
}

// PackWidths returns the widths composite families are expanded over.
func PackWidths() []os2.Width {
	return slices.Clone(packWidths)
}
