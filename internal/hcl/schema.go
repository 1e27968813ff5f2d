package hcl

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Packs      []*packBlock      `hcl:"pack,block"`
	Instances  []*instanceBlock  `hcl:"instance,block"`
	Toolchains []*toolchainBlock `hcl:"toolchain,block"`
}

// packBlock is the `pack` block. Exactly one is allowed across all files.
type packBlock struct {
	Version  *string  `hcl:"version,optional"`
	Weights  []int    `hcl:"weights"`
	Features []string `hcl:"features,optional"`
	Jobs     *int     `hcl:"jobs,optional"`
}

// instanceBlock is an `instance "<encoding>" "<family>"` block.
type instanceBlock struct {
	Encoding string  `hcl:"encoding,label"`
	Family   string  `hcl:"family,label"`
	Region   *string `hcl:"region,optional"`
	Width    int     `hcl:"width"`
}

// toolchainBlock overrides external commands. At most one is allowed.
type toolchainBlock struct {
	Python       *string `hcl:"python,optional"`
	OtfccDump    *string `hcl:"otfccdump,optional"`
	OtfccBuild   *string `hcl:"otfccbuild,optional"`
	TTFAutohint  *string `hcl:"ttfautohint,optional"`
	Chlorophytum *string `hcl:"chlorophytum,optional"`
	Merge        *string `hcl:"merge,optional"`
	SetEncoding  *string `hcl:"set_encoding,optional"`
}
