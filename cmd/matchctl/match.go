package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	chiTransport "github.com/kindph/matching/internal/transport/chi"
)

func newMatchCmd(root *rootOptions) *cobra.Command {
	var (
		seekerID string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Print the ranked matches for a seeker as JSON",
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

			results, err := a.Matching.FindMatchingJobs(cmd.Context(), seekerID, limit)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(chiTransport.NewMatchListResponse(seekerID, results))
		},
	}

	cmd.Flags().StringVarP(&seekerID, "seeker", "s", "", "seeker id")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum matches (default from config)")
	return cmd
}
