// Package makefile renders a build graph as a GNU Makefile.
//
// The writer performs no validation. Acyclicity and completeness are the
// assembler's job; a graph handed to Write is rendered exactly as is.
package makefile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vk/fontpackgen/internal/dag"
	"github.com/vk/fontpackgen/internal/fsutil"
)

// Variable is one make variable assignment.
type Variable struct {
	Name  string
	Value string
	// Default renders the assignment as NAME?=value so the environment or
	// the command line can override it.
	Default bool
}

// String renders the assignment line without the trailing newline.
func (v Variable) String() string {
	op := "="
	if v.Default {
		op = "?="
	}
	return v.Name + op + v.Value
}

// Write renders the variables, then every node in graph order: a
// `target: dep dep` header followed by tab-indented commands.
func Write(w io.Writer, vars []Variable, g *dag.Graph) error {
	bw := bufio.NewWriter(w)
	for _, v := range vars {
		fmt.Fprintln(bw, v.String())
	}
	for _, n := range g.Nodes() {
		fmt.Fprintf(bw, "%s: %s\n", n.ID, strings.Join(n.Deps, " "))
		for _, c := range n.Commands {
			fmt.Fprintf(bw, "\t%s\n", c)
		}
	}
	return bw.Flush()
}

// WriteFile renders the Makefile to path. The file is replaced atomically,
// so path never holds a partial Makefile.
func WriteFile(path string, vars []Variable, g *dag.Graph) error {
	p, err := Prepare(path, vars, g)
	if err != nil {
		return err
	}
	return p.Commit()
}

// Prepare renders the Makefile into a pending file for path.
func Prepare(path string, vars []Variable, g *dag.Graph) (*fsutil.PendingFile, error) {
	return fsutil.PrepareFile(path, func(w io.Writer) error {
		return Write(w, vars, g)
	})
}
