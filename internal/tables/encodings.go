package tables

import (
	"github.com/vk/fontpackgen/internal/fonterr"
)

// Encoding is the OS/2 code page hint stamped on a font so Windows shows
// its icon in the right script.
type Encoding string

const (
	Unspecified   Encoding = "unspec"
	GBK           Encoding = "gbk"
	Big5          Encoding = "big5"
	JIS           Encoding = "jis"
	KoreanWansung Encoding = "korean"
)

var encodings = []Encoding{Unspecified, GBK, Big5, JIS, KoreanWansung}

// Encodings returns every encoding, Unspecified first.
func Encodings() []Encoding {
	res := make([]Encoding, len(encodings))
	copy(res, encodings)
	return res
}

// RebrandEncodings returns the encodings produced by relabelling an
// unspecified-encoding font.
func RebrandEncodings() []Encoding {
	return Encodings()[1:]
}

// ParseEncoding validates an encoding name.
func ParseEncoding(s string) (Encoding, error) {
	for _, e := range encodings {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fonterr.Lookup("encoding", s)
}
