package descriptor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fontpackgen/internal/fonterr"
	"github.com/vk/fontpackgen/internal/tables"
)

func TestEncode(t *testing.T) {
	t.Run("composite descriptor", func(t *testing.T) {
		d := MustNew(Descriptor{Family: Sans, Weight: 300, Width: 5, Region: "CN", Encoding: tables.GBK})

		buf, err := Encode(d)
		require.NoError(t, err)
		assert.Equal(t,
			`{"encoding":"gbk","family":"Sans","feature":[],"italic":false,"region":"CN","weight":300,"width":5}`,
			string(buf))
	})

	t.Run("absent region is null", func(t *testing.T) {
		d := MustNew(Descriptor{Family: Latin, Weight: 400, Width: 3, Features: []string{"OSF", "SC"}})

		buf, err := Encode(d)
		require.NoError(t, err)
		assert.Equal(t,
			`{"encoding":"unspec","family":"Latin","feature":["OSF","SC"],"italic":false,"region":null,"weight":400,"width":3}`,
			string(buf))
	})
}

func TestArgument(t *testing.T) {
	d := MustNew(Descriptor{Family: UI, Weight: 300, Width: 7, Region: "CL"})

	arg, err := Argument(d)
	require.NoError(t, err)
	assert.True(t, arg[0] == '\'' && arg[len(arg)-1] == '\'', arg)
	assert.NotContains(t, arg[1:len(arg)-1], " ")
}

func TestDecode(t *testing.T) {
	descriptors := []Descriptor{
		MustNew(Descriptor{Family: Sans, Weight: 300, Width: 5, Region: "CN", Encoding: tables.GBK}),
		MustNew(Descriptor{Family: GameUI, Weight: 700, Width: 3, Region: "GB", Features: []string{"RP"}, Italic: true}),
		MustNew(Descriptor{Family: Latin, Weight: 900, Width: 7, Features: []string{"SC", "OSF"}}),
		MustNew(Descriptor{Family: LatinSource, Weight: 300, Width: 4}),
		MustNew(Descriptor{Family: CJKSource, Weight: 300, Width: 5, Region: "SourceHanSansK"}),
	}

	for _, d := range descriptors {
		t.Run(d.String(), func(t *testing.T) {
			buf, err := Encode(d)
			require.NoError(t, err)

			got, err := Decode(buf)
			require.NoError(t, err)
			if diff := cmp.Diff(d, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Run("malformed payload", func(t *testing.T) {
		_, err := Decode([]byte(`{"family":`))
		var serErr *fonterr.SerializationError
		assert.True(t, errors.As(err, &serErr))
	})

	t.Run("unknown family", func(t *testing.T) {
		_, err := Decode([]byte(`{"encoding":"unspec","family":"Mono","feature":[],"italic":false,"region":null,"weight":300,"width":5}`))
		var cfgErr *fonterr.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "family", cfgErr.Table)
	})

	t.Run("invalid descriptor", func(t *testing.T) {
		_, err := Decode([]byte(`{"encoding":"unspec","family":"Sans","feature":[],"italic":false,"region":"XX","weight":300,"width":5}`))
		assert.ErrorContains(t, err, "XX is not a known region")
	})
}
