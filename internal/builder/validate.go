package builder

import (
	"fmt"

	"github.com/vk/fontpackgen/internal/nodeid"
	"go.uber.org/multierr"
)

// validate checks that every dependency without a node is a source font
// and that the graph has no cycle.
func (b *Builder) validate() error {
	var err error
	for _, leaf := range b.graph.Leaves() {
		addr, parseErr := nodeid.Parse(leaf)
		if parseErr != nil {
			err = multierr.Append(err, fmt.Errorf("dangling dependency %s: %w", leaf, parseErr))
			continue
		}
		if !addr.Stage.IsSource() {
			err = multierr.Append(err, fmt.Errorf("dangling dependency %s: no node produces it", leaf))
		}
	}
	if err != nil {
		return err
	}
	return b.graph.DetectCycles()
}
