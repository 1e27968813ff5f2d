package builder

import (
	"fmt"
	"strings"

	"github.com/vk/fontpackgen/internal/config"
	"github.com/vk/fontpackgen/internal/descriptor"
	"github.com/vk/fontpackgen/internal/nodeid"
	"seehuhn.de/go/sfnt/os2"
)

const ttfautohintArgs = "-a qqq -c -D latn -f latn -G 0 -l 7 -r 48 -n -x 0 -v $< $@"

// commands renders the recipe lines of every stage from a toolchain.
type commands struct {
	tools config.Toolchain
}

func mkdir(stage nodeid.Stage) string {
	return "mkdir -p " + stage.Dir()
}

func (c commands) build() string {
	return c.tools.OtfccBuild + " -q -O3 --stub-cmap4 --keep-average-char-width $< -o $@"
}

func (c commands) dump(glyphPrefix string) string {
	return fmt.Sprintf("%s --glyph-name-prefix %s --ignore-hints $< -o $@", c.tools.OtfccDump, glyphPrefix)
}

func (c commands) hintDump() string {
	return c.tools.OtfccDump + " $< -o $@"
}

func (c commands) autohint() string {
	return c.tools.TTFAutohint + " " + ttfautohintArgs
}

func (c commands) merge(d descriptor.Descriptor) (string, error) {
	arg, err := descriptor.Argument(d)
	if err != nil {
		return "", err
	}
	return c.tools.Python + " " + c.tools.Merge + " " + arg, nil
}

func (c commands) setEncoding(d descriptor.Descriptor) (string, error) {
	arg, err := descriptor.Argument(d)
	if err != nil {
		return "", err
	}
	return c.tools.Python + " " + c.tools.SetEncoding + " " + arg, nil
}

func idhConfig(w os2.Weight) string {
	return fmt.Sprintf("source/idh/%d.json", w)
}

// hint runs the instruction hinter over a whole batch. Every font is given
// as an `otd hint.gz` pair.
func (c commands) hint(w os2.Weight, filenames []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s hint -c %s -h cache/idh-%d.gz -j ${IDH_JOBS}", c.tools.Chlorophytum, idhConfig(w), w)
	for _, f := range filenames {
		sb.WriteString(" " + nodeid.New(nodeid.HintDump, f).String())
		sb.WriteString(" " + nodeid.New(nodeid.HintData, f).String())
	}
	return sb.String()
}

func (c commands) instruct(w os2.Weight, filename string) string {
	return fmt.Sprintf("%s instruct -c %s %s %s %s",
		c.tools.Chlorophytum, idhConfig(w),
		nodeid.New(nodeid.HintDump, filename),
		nodeid.New(nodeid.HintData, filename),
		nodeid.New(nodeid.Instruct, filename))
}

func (c commands) integrate(w os2.Weight, filename string) string {
	return fmt.Sprintf("%s integrate -c %s %s %s %s",
		c.tools.Chlorophytum, idhConfig(w),
		nodeid.New(nodeid.Instruct, filename),
		nodeid.New(nodeid.HintDump, filename),
		nodeid.New(nodeid.Integrate, filename))
}
