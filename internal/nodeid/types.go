// internal/nodeid/types.go
package nodeid

// Stage is one step of the font pipeline.
type Stage int

const (
	// Phony marks a target that names no file.
	Phony Stage = iota
	LatinSource
	CJKSource
	LatinDump
	CJKDump
	Merge
	Unhinted
	Hint1
	HintDump
	HintData
	Instruct
	Integrate
	Final
	Alias
)

type layout struct {
	name string
	dir  string
	ext  string
}

// No extension is a suffix of another within one directory, so a target
// path matches at most one stage.
var layouts = []layout{
	Phony:       {name: "phony"},
	LatinSource: {name: "latin-source", dir: "source/noto", ext: ".ttf"},
	CJKSource:   {name: "cjk-source", dir: "source/shs", ext: ".ttf"},
	LatinDump:   {name: "latin-dump", dir: "build/noto", ext: ".otd"},
	CJKDump:     {name: "cjk-dump", dir: "build/shs", ext: ".otd"},
	Merge:       {name: "merge", dir: "build/unhinted", ext: ".otd"},
	Unhinted:    {name: "unhinted", dir: "build/unhinted", ext: ".ttf"},
	Hint1:       {name: "hint1", dir: "build/hint1", ext: ".ttf"},
	HintData:    {name: "hint-data", dir: "build/hint2", ext: ".hint.gz"},
	Instruct:    {name: "instruct", dir: "build/hint2", ext: ".instr.gz"},
	HintDump:    {name: "hint-dump", dir: "build/hint2", ext: ".otd"},
	Integrate:   {name: "integrate", dir: "build/nowar", ext: ".otd"},
	Final:       {name: "final", dir: "build/nowar", ext: ".ttf"},
	Alias:       {name: "alias", dir: "out", ext: ".ttf"},
}

// String returns the stage name used in logs.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(layouts) {
		return "unknown"
	}
	return layouts[s].name
}

// Dir returns the directory the stage writes to, with a trailing slash.
// Phony targets have no directory.
func (s Stage) Dir() string {
	if s <= Phony || int(s) >= len(layouts) {
		return ""
	}
	return layouts[s].dir + "/"
}

// IsSource reports whether the stage names an input file that no node
// produces.
func (s Stage) IsSource() bool {
	return s == LatinSource || s == CJKSource
}

// Address is the structured representation of a build target.
type Address struct {
	Stage Stage
	// Name is the descriptor filename for file stages and the full target
	// for phony ones.
	Name string
}
