package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rowmapper-generator/internal/config"
	"rowmapper-generator/internal/diagnostic"
	"rowmapper-generator/internal/logger"
	"rowmapper-generator/internal/pass"
)

// errDiagnostics is returned after the diagnostics were already reported.
var errDiagnostics = errors.New("mapper generation failed")

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"packages":       "packages",
	"dir":            "dir",
	"tag":            "tag",
	"output-package": "output.package",
	"output-name":    "output.name",
	"output-dir":     "output.dir",
	"suffix":         "output.suffix",
	"manifest":       "manifest",
	"lock":           "lock",
	"dry-run":        "dry_run",
	"comments":       "comments",
	"log-level":      "log.level",
	"log-json":       "log.json",
}

// NewRootCommand builds the rowmapper-generator command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "rowmapper-generator",
		Short: "Generate row mappers for Go types",
		Long: `rowmapper-generator reads //rowmapper:mappable types and their column tags
and generates a mapper per type that decodes cursor rows and builds column values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to the config file (default: ./rowmapper.yaml)")
	flags.StringSlice("packages", nil, "Package patterns to scan")
	flags.String("dir", "", "Directory package patterns are resolved from")
	flags.String("tag", "", "Struct tag key binding fields to columns")
	flags.String("output-package", "", "Generate every mapper into this package")
	flags.String("output-name", "", "Package name of --output-package")
	flags.String("output-dir", "", "Directory of --output-package")
	flags.String("suffix", "", "Mapper name suffix")
	flags.String("manifest", "", "Write the resolved bindings as YAML to this file")
	flags.String("lock", "", "Fail when the resolved bindings differ from this manifest")
	flags.Bool("comments", true, "Annotate generated decode steps")
	flags.String("log-level", "", "Log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "Log as JSON")

	root.AddCommand(
		genCmd(),
		checkCmd(),
		describeCmd(),
		versionCmd(),
	)

	return root
}

// loadConfig merges defaults, the config file, ROWMAPPER_* variables and the
// flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	v := config.NewViper(file)

	var bindErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return
		}

		if err := v.BindPFlag(key, f); err != nil {
			bindErr = errors.Join(bindErr, fmt.Errorf("binding flag %s: %w", f.Name, err))
		}
	})

	if bindErr != nil {
		return nil, bindErr
	}

	return config.Load(v)
}

// newDriver loads the configuration and creates a pass driver logging to the
// command's error stream.
func newDriver(cmd *cobra.Command) (*pass.Driver, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logCfg := cfg.LoggerConfig()
	logCfg.Output = cmd.ErrOrStderr()

	log := logger.NewLogger(logCfg)
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))

	return pass.New(cfg, log), cfg, nil
}

// report prints the diagnostics and fails when any of them is an error.
func report(cmd *cobra.Command, diags diagnostic.Diagnostics) error {
	diagnostic.Report(cmd.ErrOrStderr(), diags)

	if diags.HasErrors() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d error(s), %d warning(s)\n", len(diags.Errors), len(diags.Warnings))
		return errDiagnostics
	}

	return nil
}
