package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vsancheck/pkg/report"
	"vsancheck/pkg/vcenter"
)

func capacityCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show cluster vSAN capacity and usage",
		Long: `Show the cluster's vSAN space usage: totals, free/used/committed
capacity with threshold-colored percentages, data efficiency state, and the
per-object-type breakdown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(verbose)
			defer logger.Sync()

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := vcenter.Connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer client.Close(context.Background())

			cluster, err := client.FindCluster(ctx, cfg.Cluster)
			if err != nil {
				return err
			}

			usage, err := client.QuerySpaceUsage(ctx, cluster.Reference())
			if err != nil {
				return err
			}

			rep := report.NewCapacityReport(cfg.Host, cfg.Cluster, usage)

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}

			fmt.Println(rep.Render())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "output as JSON")
	return cmd
}
