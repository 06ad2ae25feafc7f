package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rowmapper-generator/internal/logger"
)

func genCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate mappers",
		Long: `Resolve every mappable type and write a <Type>Mapper file for each type
without errors. With --dry-run the files are printed instead of written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			driver, cfg, err := newDriver(cmd)
			if err != nil {
				return err
			}

			res, err := driver.Run(cmd.Context())
			if err != nil {
				return err
			}

			if err := report(cmd, res.Diagnostics()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, f := range res.Files {
				if cfg.DryRun {
					fmt.Fprintln(out, "===", f.Path(), "===")
					fmt.Fprintln(out, string(f.Content))

					continue
				}

				fmt.Fprintln(out, f.Path())
			}

			logger.FromContext(cmd.Context()).Debug("gen finished", "files", len(res.Files), "written", res.Written)

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Print the generated files instead of writing them")

	return cmd
}
