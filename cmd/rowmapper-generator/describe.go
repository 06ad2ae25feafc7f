package main

import (
	"github.com/spf13/cobra"

	"rowmapper-generator/internal/plan"
)

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the resolved column bindings as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			driver, _, err := newDriver(cmd)
			if err != nil {
				return err
			}

			res, err := driver.Resolve(cmd.Context())
			if err != nil {
				return err
			}

			// Bindings of valid types are still described when others fail.
			reportErr := report(cmd, res.Diagnostics())

			out, err := plan.ExportManifestYAML(res.Plan)
			if err != nil {
				return err
			}

			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}

			return reportErr
		},
	}
}
