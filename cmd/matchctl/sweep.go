package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSweepBoostsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-boosts",
		Short: "Clear boosts whose expiry has passed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, logger, err := root.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			defer func() { _ = logger.Sync() }()

			n, err := a.Sweeper.RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cleared %d expired boosts\n", n)
			return err
		},
	}
}
