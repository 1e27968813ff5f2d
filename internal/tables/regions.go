package tables

import (
	"slices"

	"github.com/vk/fontpackgen/internal/fonterr"
)

// Orthography names one script slot of a regional variant.
type Orthography string

const (
	Latin       Orthography = "Latn"
	Simplified  Orthography = "Hans"
	Traditional Orthography = "Hant"
	Hangul      Orthography = "ko"
)

// Variant maps every orthography of a font pack to the region whose glyph
// forms it uses. An empty entry means the pack does not cover that script.
type Variant struct {
	Latin       string
	Simplified  string
	Traditional string
	Hangul      string
}

// Region returns the region used for the given orthography.
func (v Variant) Region(o Orthography) string {
	switch o {
	case Latin:
		return v.Latin
	case Simplified:
		return v.Simplified
	case Traditional:
		return v.Traditional
	case Hangul:
		return v.Hangul
	}
	return ""
}

type region struct {
	code    string
	name    string
	source  string
	variant Variant
}

// Region order is the expansion order of the build graph.
var regions = []region{
	{code: "CN", name: "CN", source: "SourceHanSansSC", variant: Variant{"CN", "CN", "TW", "KR"}},
	{code: "TW", name: "TW", source: "SourceHanSansTC", variant: Variant{"TW", "CN", "TW", "KR"}},
	{code: "HK", name: "HK", source: "SourceHanSansHC", variant: Variant{"HK", "CN", "HK", "KR"}},
	{code: "JP", name: "JP", source: "SourceHanSans", variant: Variant{"JP", "CN", "TW", "KR"}},
	{code: "KR", name: "KR", source: "SourceHanSansK", variant: Variant{"KR", "CN", "TW", "KR"}},
	{code: "CL", name: "Classical", source: "SourceHanSansK", variant: Variant{"CL", "CL", "CL", "CL"}},
	{code: "GB", name: "GB18030", source: "SourceHanSansCN", variant: Variant{"GB", "GB", "GB", ""}},
}

// featureNames are the optional feature tags on top of the region tags.
var featureNames = map[string]string{
	"OSF": "Oldstyle",
	"SC":  "Smallcaps",
	"RP":  "Roleplaying",
}

var (
	regionIndex = make(map[string]region, len(regions))
	tagNames    = make(map[string]string, len(regions)+len(featureNames))
)

func init() {
	for _, r := range regions {
		regionIndex[r.code] = r
		tagNames[r.code] = r.name
	}
	for tag, name := range featureNames {
		tagNames[tag] = name
	}
}

// Regions returns every region code in expansion order.
func Regions() []string {
	res := make([]string, len(regions))
	for i, r := range regions {
		res[i] = r.code
	}
	return res
}

// IsRegion reports whether code is a known region.
func IsRegion(code string) bool {
	_, ok := regionIndex[code]
	return ok
}

// RegionalVariant returns the orthography map of a region.
func RegionalVariant(code string) (Variant, error) {
	r, ok := regionIndex[code]
	if !ok {
		return Variant{}, fonterr.Lookup("region", code)
	}
	return r.variant, nil
}

// Supports reports whether the pack for the region covers the orthography.
func Supports(code string, o Orthography) (bool, error) {
	v, err := RegionalVariant(code)
	if err != nil {
		return false, err
	}
	return v.Region(o) != "", nil
}

// RegionSource returns the CJK source file family for a region. The second
// result is false when the region has no source.
func RegionSource(code string) (string, bool) {
	r, ok := regionIndex[code]
	if !ok || r.source == "" {
		return "", false
	}
	return r.source, true
}

// IsSource reports whether name is one of the CJK source file families.
func IsSource(name string) bool {
	return slices.ContainsFunc(regions, func(r region) bool { return r.source == name })
}

// TagName returns the display name of a region or feature tag.
func TagName(tag string) (string, error) {
	name, ok := tagNames[tag]
	if !ok {
		return "", fonterr.Lookup("tag", tag)
	}
	return name, nil
}

// IsFeature reports whether tag is an optional feature tag.
func IsFeature(tag string) bool {
	_, ok := featureNames[tag]
	return ok
}
