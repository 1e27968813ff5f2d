package descriptor

import (
	"github.com/vk/fontpackgen/internal/fonterr"
)

// Family is the kind of font a descriptor names.
type Family int

const (
	// Sans is the plain composite Sans family.
	Sans Family = iota
	// UI is the plain composite UI family.
	UI
	// GameSans is the Sans family with tabular game numerals.
	GameSans
	// GameUI is the UI family with tabular game numerals.
	GameUI
	// Latin is the Latin-only family.
	Latin
	// LatinSource is the upstream Latin source font.
	LatinSource
	// CJKSource is the upstream CJK source font.
	CJKSource
)

// The names are the ones external tools receive in the wire encoding.
var familyNames = []string{
	Sans:        "Sans",
	UI:          "UI",
	GameSans:    "WarcraftSans",
	GameUI:      "WarcraftUI",
	Latin:       "Latin",
	LatinSource: "Noto",
	CJKSource:   "Source",
}

// String returns the wire name of the family.
func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return "unknown"
	}
	return familyNames[f]
}

// ParseFamily looks a family up by its wire name.
func ParseFamily(s string) (Family, error) {
	for i, name := range familyNames {
		if name == s {
			return Family(i), nil
		}
	}
	return 0, fonterr.Lookup("family", s)
}

// Composite reports whether the family is assembled from Latin and CJK
// sources. Composite families carry a region and an encoding.
func (f Family) Composite() bool {
	switch f {
	case Sans, UI, GameSans, GameUI:
		return true
	}
	return false
}

// Game reports whether the family carries game numerals.
func (f Family) Game() bool {
	return f == GameSans || f == GameUI
}

// Source reports whether the family is an upstream source font.
func (f Family) Source() bool {
	return f == LatinSource || f == CJKSource
}
