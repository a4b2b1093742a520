package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the preference cache",
	}

	var seekerID string
	invalidate := &cobra.Command{
		Use:   "invalidate",
		Short: "Drop cached preferences and profile for a seeker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seekerID == "" {
				return errors.New("--seeker is required")
			}

			a, logger, err := root.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			defer func() { _ = logger.Sync() }()

			if a.PrefCache == nil {
				return errors.New("cache is disabled in config")
			}
			if err := a.PrefCache.Invalidate(cmd.Context(), seekerID); err != nil {
				return fmt.Errorf("invalidate %s: %w", seekerID, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "invalidated cache for seeker %s\n", seekerID)
			return err
		},
	}
	invalidate.Flags().StringVarP(&seekerID, "seeker", "s", "", "seeker id")

	cmd.AddCommand(invalidate)
	return cmd
}
