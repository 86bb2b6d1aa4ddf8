package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/liberate/pkg/config"
)

// runCommand creates the command that performs the liberate goal.
func (c *CLI) runCommand() *cobra.Command {
	var (
		opts     projectOptions
		useCache bool
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Liberate the required classes into the build output",
		Long: `Run classifies the dependency jars, writes liberate.pro into the build
directory, runs ProGuard on it and extracts the resulting staging jar into
the destination directory.

The goal does nothing unless the packaging type is liberated-jar and it is
enabled.`,
		Example: `  # Standalone, with jars copied by mvn dependency:copy-dependencies
  liberate run -e com.example.Main --deps-dir target/dependency

  # Use pom.xml and liberate.toml in the current directory
  liberate run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if reason := skipReason(cfg); reason != "" {
				logger.Info(reason)
				printInfo("Skipped: %s", reason)
				return nil
			}
			if useCache {
				cfg.Cache.Enabled = config.Bool(true)
			}
			req, err := request(cfg)
			if err != nil {
				return err
			}
			req.Refresh = refresh

			lib, err := c.newLiberator(cfg, logger, noCache)
			if err != nil {
				return err
			}
			defer lib.Cache.Close()

			// The spinner would interleave with ProGuard's own output.
			var spinner *Spinner
			if logger.GetLevel() > log.DebugLevel && !req.Verbose {
				spinner = newSpinnerWithContext(ctx, "Running ProGuard...")
				spinner.Start()
			}
			prog := newProgress(logger)
			res, err := lib.Execute(ctx, req)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}

			if res.Skipped != "" {
				printInfo("Skipped: %s", res.Skipped)
				return nil
			}
			prog.done(fmt.Sprintf("Extracted %d files", res.Extract.Files))

			if len(res.Classification.Liberate) == 0 {
				printWarning("No dependency matched the liberate-from prefixes")
			}
			printSuccess("Liberated classes from %d jar(s)", len(res.Classification.Liberate))
			printFile(res.Destination)
			printStats(res.Extract.Files, res.Extract.Bytes, res.CacheHit)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&useCache, "cache", false, "cache staging jars between runs")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the staging jar cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached staging jars")
	cmd.MarkFlagsMutuallyExclusive("cache", "no-cache")

	return cmd
}
