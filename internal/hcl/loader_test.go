package hcl

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fontpackgen/internal/config"
	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/fonterr"
	"github.com/vk/fontpackgen/internal/tables"
	"github.com/vk/fontpackgen/internal/testutil"
	"seehuhn.de/go/sfnt/os2"
)

const packHCL = `
pack {
  version  = "2.100"
  weights  = [300, 700]
  features = ["OSF"]
  jobs     = 4
}
`

const instancesHCL = `
instance "gbk" "Sans" {
  region = "CN"
  width  = 3
}

instance "unspec" "Latin" {
  width = 7
}

instance "korean" "WarcraftUI" {
  region = "KR"
  width  = 5
}
`

func TestLoad(t *testing.T) {
	// Arrange
	dir := testutil.WriteFiles(t, map[string]string{
		"a_pack.hcl":      packHCL,
		"b/instances.hcl": instancesHCL,
		"c_tools.hcl": `
toolchain {
  python      = "python3"
  otfccbuild  = "/opt/otfcc/otfccbuild"
}
`,
		"notes.txt": "ignored",
	})

	// Act
	pack, err := NewLoader().Load(context.Background(), dir)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2.100", pack.Version)
	assert.Equal(t, []os2.Weight{300, 700}, pack.Weights)
	assert.Equal(t, []string{"OSF"}, pack.Features)
	assert.Equal(t, 4, pack.Jobs)
	assert.Equal(t, []config.Instance{
		{Encoding: tables.GBK, Family: descriptor.Sans, Region: "CN", Width: 3},
		{Encoding: tables.Unspecified, Family: descriptor.Latin, Width: 7},
		{Encoding: tables.KoreanWansung, Family: descriptor.GameUI, Region: "KR", Width: 5},
	}, pack.Instances)

	expectedTools := config.DefaultToolchain()
	expectedTools.Python = "python3"
	expectedTools.OtfccBuild = "/opt/otfcc/otfccbuild"
	assert.Equal(t, expectedTools, pack.Toolchain)
}

func TestLoad_Defaults(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"pack.hcl": `
pack {
  weights = [400]
}
`,
	})

	pack, err := NewLoader().Load(context.Background(), filepath.Join(dir, "pack.hcl"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultVersion, pack.Version)
	assert.Equal(t, config.DefaultJobs, pack.Jobs)
	assert.Equal(t, []string{}, pack.Features)
	assert.Empty(t, pack.Instances)
	assert.Equal(t, config.DefaultToolchain(), pack.Toolchain)
}

func TestLoad_SameFileTwice(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"pack.hcl": packHCL})
	file := filepath.Join(dir, "pack.hcl")

	_, err := NewLoader().Load(context.Background(), dir, file)
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "no hcl files",
			files:   map[string]string{"readme.md": "# nothing"},
			wantErr: "no .hcl files found",
		},
		{
			name:    "no pack block",
			files:   map[string]string{"i.hcl": instancesHCL},
			wantErr: "no pack block found",
		},
		{
			name:    "duplicate pack block",
			files:   map[string]string{"a.hcl": packHCL, "b.hcl": packHCL},
			wantErr: "duplicate pack block",
		},
		{
			name: "duplicate toolchain block",
			files: map[string]string{
				"a.hcl": packHCL + "toolchain {}\n",
				"b.hcl": "toolchain {}\n",
			},
			wantErr: "duplicate toolchain block",
		},
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": "pack {"},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing required attribute",
			files:   map[string]string{"a.hcl": "pack {}\n"},
			wantErr: "failed to decode HCL file",
		},
		{
			name: "unknown encoding",
			files: map[string]string{
				"a.hcl": packHCL,
				"b.hcl": "instance \"ebcdic\" \"Sans\" {\n  region = \"CN\"\n  width = 3\n}\n",
			},
			wantErr: `instance "ebcdic" "Sans"`,
		},
		{
			name: "unknown family",
			files: map[string]string{
				"a.hcl": packHCL,
				"b.hcl": "instance \"gbk\" \"Serif\" {\n  region = \"CN\"\n  width = 3\n}\n",
			},
			wantErr: "Serif",
		},
		{
			name: "invalid pack",
			files: map[string]string{
				"a.hcl": "pack {\n  weights = [350]\n  jobs = 0\n}\n",
			},
			wantErr: "invalid pack configuration",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := testutil.WriteFiles(t, tc.files)
			_, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoad_InvalidInstanceIsAConfigurationError(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl": packHCL + "instance \"gbk\" \"Sans\" {\n  region = \"XX\"\n  width = 3\n}\n",
	})

	_, err := NewLoader().Load(context.Background(), dir)
	var cfgErr *fonterr.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
	assert.Equal(t, "region", cfgErr.Table)
	assert.Equal(t, "XX", cfgErr.Key)
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "error accessing path")
}

func TestLoaderImplementsInterface(t *testing.T) {
	var _ config.Loader = NewLoader()
}
