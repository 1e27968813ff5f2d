package descriptor

import (
	"errors"
	"strings"

	"github.com/vk/fontpackgen/internal/fonterr"
	"github.com/vk/fontpackgen/internal/tables"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"seehuhn.de/go/sfnt/os2"
)

// wireDescriptor is the shape external tools receive. Attribute names match
// what merge.py and set-encoding.py read.
type wireDescriptor struct {
	Family   string   `cty:"family"`
	Weight   int      `cty:"weight"`
	Width    int      `cty:"width"`
	Region   *string  `cty:"region"`
	Feature  []string `cty:"feature"`
	Encoding string   `cty:"encoding"`
	Italic   bool     `cty:"italic"`
}

var wireType = cty.Object(map[string]cty.Type{
	"family":   cty.String,
	"weight":   cty.Number,
	"width":    cty.Number,
	"region":   cty.String,
	"feature":  cty.List(cty.String),
	"encoding": cty.String,
	"italic":   cty.Bool,
})

var errUnquotable = errors.New("payload contains a single quote")

// Encode renders d as a compact JSON object with sorted keys. An absent
// region is encoded as null.
func Encode(d Descriptor) ([]byte, error) {
	w := wireDescriptor{
		Family:   d.Family.String(),
		Weight:   int(d.Weight),
		Width:    int(d.Width),
		Feature:  d.Features,
		Encoding: string(d.Encoding),
		Italic:   d.Italic,
	}
	if w.Feature == nil {
		w.Feature = []string{}
	}
	if d.Region != "" {
		region := d.Region
		w.Region = &region
	}

	val, err := gocty.ToCtyValue(w, wireType)
	if err != nil {
		return nil, &fonterr.SerializationError{Descriptor: d.String(), Err: err}
	}
	buf, err := ctyjson.Marshal(val, wireType)
	if err != nil {
		return nil, &fonterr.SerializationError{Descriptor: d.String(), Err: err}
	}
	return buf, nil
}

// Argument returns the encoding of d quoted as a single shell argument.
func Argument(d Descriptor) (string, error) {
	buf, err := Encode(d)
	if err != nil {
		return "", err
	}
	if strings.ContainsRune(string(buf), '\'') {
		return "", &fonterr.SerializationError{Descriptor: d.String(), Err: errUnquotable}
	}
	return "'" + string(buf) + "'", nil
}

// Decode parses the output of Encode and validates the result.
func Decode(buf []byte) (Descriptor, error) {
	val, err := ctyjson.Unmarshal(buf, wireType)
	if err != nil {
		return Descriptor{}, &fonterr.SerializationError{Descriptor: string(buf), Err: err}
	}
	var w wireDescriptor
	if err := gocty.FromCtyValue(val, &w); err != nil {
		return Descriptor{}, &fonterr.SerializationError{Descriptor: string(buf), Err: err}
	}

	family, err := ParseFamily(w.Family)
	if err != nil {
		return Descriptor{}, err
	}
	d := Descriptor{
		Family:   family,
		Weight:   os2.Weight(w.Weight),
		Width:    os2.Width(w.Width),
		Features: w.Feature,
		Encoding: tables.Encoding(w.Encoding),
		Italic:   w.Italic,
	}
	if w.Region != nil {
		d.Region = *w.Region
	}
	return New(d)
}
