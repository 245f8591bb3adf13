package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vsancheck/pkg/report"
	"vsancheck/pkg/vcenter"
)

func hclCmd() *cobra.Command {
	var fromCache bool

	cmd := &cobra.Command{
		Use:   "hcl",
		Short: "Show the cluster hardware compatibility status",
		Long: `Show the hardware compatibility (HCL) status for every host in the
cluster: compatibility database age, and per-controller device, driver,
firmware and tool support.`,
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

			summary, err := client.QueryHealthSummary(ctx, cluster.Reference(), vcenter.HclFields, fromCache)
			if err != nil {
				return err
			}
			if summary.HclInfo == nil {
				return fmt.Errorf("no HCL information returned for cluster %s", cfg.Cluster)
			}

			rep := report.NewHclReport(cfg.Host, cfg.Cluster, fromCache, summary.Timestamp, summary.HclInfo)
			fmt.Println(rep.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromCache, "cached", false, "read the vCenter-cached health data instead of polling hosts")
	return cmd
}
