package main

import (
	"context"
	"fmt"

	"mode-allocation-simulator/internal/adapters/costs"

	"github.com/spf13/cobra"
)

func newLanesCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lanes",
		Short: "List the reference lane costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}

			repo, closeCosts, err := costs.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeCosts() }()

			lanes, err := repo.ListLaneCosts(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Rotas de referência (%d)", len(lanes))))
			fmt.Fprintln(out, lanesTable(lanes))
			return nil
		},
	}
}
