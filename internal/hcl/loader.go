package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/fontpackgen/internal/config"
	"github.com/vk/fontpackgen/internal/ctxlog"
	"github.com/vk/fontpackgen/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and merges them into one
// pack. Values the files leave out keep their defaults; the instance list
// is replaced by the instances found, in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Pack, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	pack := config.Default()
	pack.Instances = nil

	parser := hclparse.NewParser()
	packFile, toolchainFile := "", ""
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, b := range root.Packs {
			if packFile != "" {
				return nil, fmt.Errorf("duplicate pack block in %s, first defined in %s", file, packFile)
			}
			packFile = file
			translatePack(b, pack)
		}
		for _, b := range root.Toolchains {
			if toolchainFile != "" {
				return nil, fmt.Errorf("duplicate toolchain block in %s, first defined in %s", file, toolchainFile)
			}
			toolchainFile = file
			translateToolchain(b, &pack.Toolchain)
		}
		for _, b := range root.Instances {
			inst, err := translateInstance(b)
			if err != nil {
				return nil, fmt.Errorf("instance %q %q in %s: %w", b.Encoding, b.Family, file, err)
			}
			pack.Instances = append(pack.Instances, inst)
		}
	}

	if packFile == "" {
		return nil, fmt.Errorf("no pack block found in %v", paths)
	}
	if err := pack.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pack configuration: %w", err)
	}

	logger.Debug("HCL loading complete.", "weights", len(pack.Weights), "features", len(pack.Features), "instances", len(pack.Instances))
	return pack, nil
}
