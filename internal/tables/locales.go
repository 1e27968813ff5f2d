package tables

import (
	"fmt"

	"github.com/vk/fontpackgen/internal/fonterr"
	"golang.org/x/text/language"
)

// LocaleID is a Windows language ID as used by OpenType name records.
type LocaleID uint16

const (
	EnglishUS          LocaleID = 0x0409
	ChineseSimplified  LocaleID = 0x0804
	ChineseTraditional LocaleID = 0x0404
	ChineseHongKong    LocaleID = 0x0C04
	Japanese           LocaleID = 0x0411
	Korean             LocaleID = 0x0412
)

// DefaultLocale carries the non-localized family name.
const DefaultLocale = EnglishUS

// Locale describes one name-table language.
type Locale struct {
	ID  LocaleID
	Tag language.Tag
	// Orthography decides whether the locale sees the localized name:
	// it does only if the region's variant covers this orthography.
	Orthography Orthography
}

// Japanese follows the Simplified slot: the pack has no Japanese-specific
// orthography.
var regionalLocales = []Locale{
	{ID: ChineseSimplified, Tag: language.MustParse("zh-CN"), Orthography: Simplified},
	{ID: ChineseTraditional, Tag: language.MustParse("zh-TW"), Orthography: Traditional},
	{ID: ChineseHongKong, Tag: language.MustParse("zh-HK"), Orthography: Traditional},
	{ID: Japanese, Tag: language.MustParse("ja-JP"), Orthography: Simplified},
	{ID: Korean, Tag: language.MustParse("ko-KR"), Orthography: Hangul},
}

var defaultTag = language.MustParse("en-US")

// RegionalLocales returns the locales whose name depends on script support.
func RegionalLocales() []Locale {
	res := make([]Locale, len(regionalLocales))
	copy(res, regionalLocales)
	return res
}

// Tag returns the BCP 47 tag of the locale.
func (id LocaleID) Tag() (language.Tag, error) {
	if id == DefaultLocale {
		return defaultTag, nil
	}
	for _, l := range regionalLocales {
		if l.ID == id {
			return l.Tag, nil
		}
	}
	return language.Und, fonterr.Lookup("locale", id.String())
}

// String formats the ID the way name tables list it.
func (id LocaleID) String() string {
	return fmt.Sprintf("0x%04X", uint16(id))
}
