package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/fonterr"
	"github.com/vk/fontpackgen/internal/naming"
	"github.com/vk/fontpackgen/internal/tables"
	"seehuhn.de/go/sfnt/os2"
)

func filename(t *testing.T, d descriptor.Descriptor) string {
	t.Helper()
	name, err := naming.GenerateFilename(d)
	require.NoError(t, err)
	return name
}

func TestResolveDependency_PlainSans(t *testing.T) {
	// Arrange
	d := descriptor.MustNew(descriptor.Descriptor{
		Family:   descriptor.Sans,
		Weight:   300,
		Width:    5,
		Region:   "CN",
		Encoding: tables.GBK,
	})

	// Act
	deps, err := ResolveDependency(d)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []Role{RoleLatin, RoleCJK}, deps.Roles())

	require.NotNil(t, deps.CJK)
	assert.Equal(t, descriptor.CJKSource, deps.CJK.Family)
	assert.Equal(t, "SourceHanSansSC", deps.CJK.Region)
	assert.Equal(t, os2.WidthNormal, deps.CJK.Width)
	assert.Equal(t, "SourceHanSansSC-Light", filename(t, *deps.CJK))

	require.NotNil(t, deps.Latin)
	assert.Equal(t, descriptor.LatinSource, deps.Latin.Family)
	assert.Equal(t, os2.Weight(300), deps.Latin.Weight)
	assert.Equal(t, os2.WidthSemiCondensed, deps.Latin.Width)
	assert.Nil(t, deps.Numeral)
}

func TestResolveDependency_CJKWidthIsCanonical(t *testing.T) {
	for _, width := range tables.PackWidths() {
		d := descriptor.MustNew(descriptor.Descriptor{Family: descriptor.UI, Weight: 400, Width: width, Region: "JP"})
		deps, err := ResolveDependency(d)
		require.NoError(t, err)
		assert.Equal(t, tables.CanonicalWidth, deps.CJK.Width, "width %d", width)
	}
}

func TestResolveDependency_LatinWidths(t *testing.T) {
	testCases := map[os2.Width]os2.Width{3: 3, 4: 3, 5: 4, 7: 5}
	for in, out := range testCases {
		d := descriptor.MustNew(descriptor.Descriptor{Family: descriptor.Sans, Weight: 300, Width: in, Region: "KR"})
		deps, err := ResolveDependency(d)
		require.NoError(t, err)
		assert.Equal(t, out, deps.Latin.Width, "width %d", in)
	}
}

func TestResolveDependency_GameFamilies(t *testing.T) {
	for _, family := range []descriptor.Family{descriptor.GameSans, descriptor.GameUI} {
		t.Run(family.String(), func(t *testing.T) {
			d := descriptor.MustNew(descriptor.Descriptor{Family: family, Weight: 500, Width: 7, Region: "TW", Encoding: tables.Big5})

			deps, err := ResolveDependency(d)

			require.NoError(t, err)
			assert.Equal(t, []Role{RoleLatin, RoleNumeral, RoleCJK}, deps.Roles())
			assert.Equal(t, tables.NumeralWidth, deps.Numeral.Width)
			assert.Equal(t, os2.Weight(500), deps.Numeral.Weight)
			assert.Equal(t, descriptor.LatinSource, deps.Numeral.Family)
		})
	}
}

func TestResolveDependency_LatinFamily(t *testing.T) {
	d := descriptor.MustNew(descriptor.Descriptor{Family: descriptor.Latin, Weight: 300, Width: 7, Features: []string{"OSF"}})

	deps, err := ResolveDependency(d)

	require.NoError(t, err)
	assert.Equal(t, []Role{RoleLatin}, deps.Roles())
	_, ok := deps.Get(RoleCJK)
	assert.False(t, ok)
}

func TestResolveDependency_RegionIsolation(t *testing.T) {
	cn := descriptor.MustNew(descriptor.Descriptor{Family: descriptor.Sans, Weight: 300, Width: 3, Region: "CN"})
	tw := descriptor.MustNew(descriptor.Descriptor{Family: descriptor.Sans, Weight: 300, Width: 3, Region: "TW"})

	cnDeps, err := ResolveDependency(cn)
	require.NoError(t, err)
	twDeps, err := ResolveDependency(tw)
	require.NoError(t, err)

	assert.NotEqual(t, filename(t, *cnDeps.CJK), filename(t, *twDeps.CJK))
	assert.Equal(t, filename(t, *cnDeps.Latin), filename(t, *twDeps.Latin))
}

func TestResolveDependency_Errors(t *testing.T) {
	t.Run("source family", func(t *testing.T) {
		d := descriptor.MustNew(descriptor.Descriptor{Family: descriptor.LatinSource, Weight: 300, Width: 3})
		_, err := ResolveDependency(d)
		var resErr *fonterr.ResolutionError
		require.True(t, errors.As(err, &resErr))
		assert.Equal(t, "Noto", resErr.Family)
	})

	t.Run("region without source", func(t *testing.T) {
		d := descriptor.Descriptor{Family: descriptor.Sans, Weight: 300, Width: 3, Region: "XX"}
		_, err := ResolveDependency(d)
		var resErr *fonterr.ResolutionError
		require.True(t, errors.As(err, &resErr))
		assert.Equal(t, "XX", resErr.Region)
	})

	t.Run("width without latin source", func(t *testing.T) {
		d := descriptor.Descriptor{Family: descriptor.Sans, Weight: 300, Width: 9, Region: "CN"}
		_, err := ResolveDependency(d)
		var cfgErr *fonterr.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	})
}
