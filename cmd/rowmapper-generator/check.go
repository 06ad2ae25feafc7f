package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate mappable types without generating",
		RunE: func(cmd *cobra.Command, _ []string) error {
			driver, _, err := newDriver(cmd)
			if err != nil {
				return err
			}

			res, err := driver.Resolve(cmd.Context())
			if err != nil {
				return err
			}

			if err := report(cmd, res.Diagnostics()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d mappable type(s) OK\n", len(res.Plan.Classes))

			return nil
		},
	}
}
