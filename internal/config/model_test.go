package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/fonterr"
	"github.com/vk/fontpackgen/internal/tables"
	"go.uber.org/multierr"
	"seehuhn.de/go/sfnt/os2"
)

func TestDefault(t *testing.T) {
	pack := Default()
	require.NoError(t, pack.Validate())
	assert.Equal(t, DefaultVersion, pack.Version)
	assert.Equal(t, []os2.Weight{300}, pack.Weights)
	assert.Len(t, pack.Instances, 6)

	// Each call returns an independent pack.
	pack.Instances[0].Region = "TW"
	assert.Equal(t, "CN", Default().Instances[0].Region)
}

func TestInstanceDescriptor(t *testing.T) {
	inst := Instance{Encoding: tables.GBK, Family: descriptor.Sans, Region: "CN", Width: 5}

	d, err := inst.Descriptor(300)
	require.NoError(t, err)
	assert.Equal(t, descriptor.Descriptor{
		Family:   descriptor.Sans,
		Weight:   300,
		Width:    5,
		Region:   "CN",
		Features: []string{},
		Encoding: tables.GBK,
	}, d)

	_, err = inst.Descriptor(250)
	assert.Error(t, err)
}

func TestToolchainWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultToolchain(), Toolchain{}.WithDefaults())

	custom := Toolchain{Python: "python3", Merge: "tools/merge.py"}.WithDefaults()
	assert.Equal(t, "python3", custom.Python)
	assert.Equal(t, "tools/merge.py", custom.Merge)
	assert.Equal(t, "otfccbuild", custom.OtfccBuild)
	assert.Equal(t, "set-encoding.py", custom.SetEncoding)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(p *Pack)
		wantErr []string
	}{
		{
			name:   "default pack",
			mutate: func(p *Pack) {},
		},
		{
			name:    "empty version",
			mutate:  func(p *Pack) { p.Version = "" },
			wantErr: []string{"version cannot be empty"},
		},
		{
			name:    "no weights",
			mutate:  func(p *Pack) { p.Weights = nil },
			wantErr: []string{"at least one weight is required"},
		},
		{
			name:    "unknown and duplicate weights",
			mutate:  func(p *Pack) { p.Weights = []os2.Weight{300, 350, 300} },
			wantErr: []string{"350 is not a known weight", "weight 300 listed twice"},
		},
		{
			name:    "unknown and duplicate features",
			mutate:  func(p *Pack) { p.Features = []string{"OSF", "XYZ", "OSF"} },
			wantErr: []string{"XYZ is not a known feature", `feature "OSF" listed twice`},
		},
		{
			name:    "non-positive jobs",
			mutate:  func(p *Pack) { p.Jobs = 0 },
			wantErr: []string{"jobs must be positive, got 0"},
		},
		{
			name: "source family instance",
			mutate: func(p *Pack) {
				p.Instances = append(p.Instances, Instance{Encoding: tables.Unspecified, Family: descriptor.LatinSource, Width: 5})
			},
			wantErr: []string{"instance 6: source family Noto cannot be shipped"},
		},
		{
			name: "latin instance with an encoding",
			mutate: func(p *Pack) {
				p.Instances = []Instance{{Encoding: tables.GBK, Family: descriptor.Latin, Width: 5}}
			},
			wantErr: []string{"instance 0", "cannot be rebranded"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pack := Default()
			tc.mutate(pack)

			err := pack.Validate()
			if len(tc.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tc.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}

func TestValidate_ReportsEverything(t *testing.T) {
	pack := Default()
	pack.Version = ""
	pack.Jobs = -1
	pack.Instances[0].Region = "XX"

	err := pack.Validate()
	assert.Len(t, multierr.Errors(err), 3)

	var cfgErr *fonterr.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "region", cfgErr.Table)
}
