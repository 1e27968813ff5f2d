// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex accepts descriptor filenames and phony target names.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.,-]+$`)

// isValidName checks for undesirable but technically valid names.
func isValidName(name string) bool {
	if name == "." || name == ".." || name == "-" {
		return false
	}
	return nameRegex.MatchString(name)
}

// Parse creates a new Address by parsing a target path.
func Parse(target string) (*Address, error) {
	if target == "" {
		return nil, fmt.Errorf("target cannot be empty")
	}

	if !strings.Contains(target, "/") {
		if !isValidName(target) {
			return nil, fmt.Errorf("invalid phony target: %q", target)
		}
		return NewPhony(target), nil
	}

	for stage := Phony + 1; int(stage) < len(layouts); stage++ {
		l := layouts[stage]
		rest, ok := strings.CutPrefix(target, l.dir+"/")
		if !ok {
			continue
		}
		name, ok := strings.CutSuffix(rest, l.ext)
		if !ok {
			continue
		}
		if name == "" || !isValidName(name) {
			return nil, fmt.Errorf("invalid file name in target %q", target)
		}
		return New(stage, name), nil
	}

	return nil, fmt.Errorf("target %q does not belong to any stage", target)
}
