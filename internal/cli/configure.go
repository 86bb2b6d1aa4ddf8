package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/liberate/pkg/liberate"
	"github.com/matzehuels/liberate/pkg/proguard"
)

// configCommand creates the command that prints the ProGuard directives a
// run would use.
func (c *CLI) configCommand() *cobra.Command {
	var (
		opts   projectOptions
		output string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the ProGuard configuration without running it",
		Long: `Config resolves the project settings and prints the ProGuard directive
list, one directive per line, exactly as run would pass it. With --output
the list is written as a ProGuard .pro file instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if reason := skipReason(cfg); reason != "" {
				printInfo("Skipped: %s", reason)
				return nil
			}
			req, err := request(cfg)
			if err != nil {
				return err
			}

			res, _, err := liberate.NewLiberator(c.Shrinker, nil, loggerFromContext(cmd.Context())).Plan(req)
			if err != nil {
				return err
			}
			if res.Skipped != "" {
				printInfo("Skipped: %s", res.Skipped)
				return nil
			}
			if _, err := proguard.Parse(res.Directives); err != nil {
				return err
			}

			if output != "" {
				if err := proguard.WriteFile(output, res.Directives); err != nil {
					return err
				}
				printSuccess("Wrote %d directives", len(res.Directives))
				printFile(output)
				return nil
			}
			for _, d := range res.Directives {
				fmt.Fprintln(c.out(), d)
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the directives to this .pro file")

	return cmd
}
