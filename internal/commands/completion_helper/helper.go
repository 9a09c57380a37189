package completion_helper

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// DefaultFlagComplete prints every flag visible to cmd, inherited ones
// included, one per line for the shell completion script.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	var w io.Writer = os.Stdout
	if root := cmd.Root(); root != nil && root.Writer != nil {
		w = root.Writer
	}

	seen := make(map[string]bool)
	for _, c := range cmd.Lineage() {
		for _, f := range c.Flags {
			for _, name := range f.Names() {
				if seen[name] {
					continue
				}
				seen[name] = true
				if len(name) == 1 {
					_, _ = fmt.Fprintln(w, "-"+name)
				} else {
					_, _ = fmt.Fprintln(w, "--"+name)
				}
			}
		}
	}
}
