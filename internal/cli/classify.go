package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/liberate/pkg/artifact"
)

// classifyCommand creates the command that shows how dependency jars are
// classified.
func (c *CLI) classifyCommand() *cobra.Command {
	var opts projectOptions

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show which dependency jars are liberated, supported or ignored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			deps, err := cfg.Artifacts()
			if err != nil {
				return err
			}

			cl := artifact.Classify(deps, cfg.LiberateFrom, cfg.AlsoSupport)
			c.printBucket("liberate", cl.Liberate)
			c.printBucket("support", cl.Support)
			c.printBucket("ignored", cl.Ignored)
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

// printBucket writes "<name>\t<path>" per artifact so the output can be
// filtered with standard tools.
func (c *CLI) printBucket(name string, arts []artifact.Artifact) {
	for _, a := range arts {
		fmt.Fprintf(c.out(), "%s\t%s\n", name, a.Path)
	}
}
