package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/vk/fontpackgen/internal/ctxlog"
	"github.com/vk/fontpackgen/internal/dag"
	"github.com/vk/fontpackgen/internal/makefile"
)

// ShellRunner runs recipe lines with sh -c the way make does: automatic
// variables are expanded first, a leading '-' ignores the exit status and a
// leading '@' is dropped.
type ShellRunner struct {
	// Dir is the working directory; empty means the current one.
	Dir string
	// Shell defaults to "sh".
	Shell string
	// Vars are the make variables visible to the recipes.
	Vars map[string]string
}

// NewShellRunner creates a runner that executes recipes in dir.
func NewShellRunner(dir string, vars map[string]string) *ShellRunner {
	return &ShellRunner{Dir: dir, Shell: "sh", Vars: vars}
}

// Run implements the Runner interface.
func (r *ShellRunner) Run(ctx context.Context, n dag.Node) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)
	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}

	var out bytes.Buffer
	for _, line := range n.Commands {
		line, ignore := cutFlags(line)
		cmdline := Expand(line, n, r.Vars)
		logger.Debug("Running recipe line.", "target", n.ID, "command", cmdline)

		cmd := exec.CommandContext(ctx, shell, "-c", cmdline)
		cmd.Dir = r.Dir
		cmd.Stdout = &out
		cmd.Stderr = &out
		if err := cmd.Run(); err != nil {
			if ignore {
				logger.Debug("Ignoring failed recipe line.", "target", n.ID, "error", err)
				continue
			}
			return out.Bytes(), fmt.Errorf("command %q failed: %w", cmdline, err)
		}
	}
	return out.Bytes(), nil
}

// cutFlags strips the '-' and '@' recipe prefixes.
func cutFlags(line string) (string, bool) {
	ignore := false
	for {
		switch {
		case strings.HasPrefix(line, "-"):
			ignore = true
			line = line[1:]
		case strings.HasPrefix(line, "@"):
			line = line[1:]
		default:
			return line, ignore
		}
	}
}

// Expand substitutes $@, $<, $^, $$, ${NAME} and $(NAME) in a recipe line.
// $^ lists each dependency once. Unknown variables expand to nothing.
func Expand(line string, n dag.Node, vars map[string]string) string {
	var sb strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '$' || i+1 == len(line) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch next := line[i]; next {
		case '$':
			sb.WriteByte('$')
		case '@':
			sb.WriteString(n.ID)
		case '<':
			if len(n.Deps) > 0 {
				sb.WriteString(n.Deps[0])
			}
		case '^':
			sb.WriteString(strings.Join(uniq(n.Deps), " "))
		case '{', '(':
			closer := byte('}')
			if next == '(' {
				closer = ')'
			}
			end := strings.IndexByte(line[i+1:], closer)
			if end < 0 {
				sb.WriteString(line[i-1:])
				return sb.String()
			}
			sb.WriteString(vars[line[i+1:i+1+end]])
			i += end + 1
		default:
			sb.WriteString(vars[string(next)])
		}
	}
	return sb.String()
}

func uniq(deps []string) []string {
	res := make([]string, 0, len(deps))
	for _, d := range deps {
		if !slices.Contains(res, d) {
			res = append(res, d)
		}
	}
	return res
}

// Variables resolves Makefile variables the way make does: a defaulted
// variable takes its value from the environment when set there.
func Variables(vars []makefile.Variable, lookupEnv func(string) (string, bool)) map[string]string {
	res := make(map[string]string, len(vars))
	for _, v := range vars {
		res[v.Name] = v.Value
		if !v.Default || lookupEnv == nil {
			continue
		}
		if env, ok := lookupEnv(v.Name); ok {
			res[v.Name] = env
		}
	}
	return res
}
