package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vsancheck/pkg/report"
	"vsancheck/pkg/vcenter"
)

func checkCmd() *cobra.Command {
	var fromCache bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the capacity, health and HCL reports in sequence",
		Long: `Run the full cluster check: capacity and usage, health summary,
and hardware compatibility, all over a single vCenter session.

Examples:
  vsancheck check -s vcenter.example.com -u administrator@vsphere.local --cluster VSAN-Cluster
  vsancheck check -s vcenter.example.com -u administrator@vsphere.local --cached`,
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
			ref := cluster.Reference()

			usage, err := client.QuerySpaceUsage(ctx, ref)
			if err != nil {
				return err
			}
			fmt.Println(report.NewCapacityReport(cfg.Host, cfg.Cluster, usage).Render())

			summary, err := client.QueryHealthSummary(ctx, ref, vcenter.HealthFields, fromCache)
			if err != nil {
				return err
			}
			fmt.Println(report.NewHealthReport(cfg.Host, cfg.Cluster, fromCache, summary).Render(verbose))

			hclSummary, err := client.QueryHealthSummary(ctx, ref, vcenter.HclFields, fromCache)
			if err != nil {
				return err
			}
			if hclSummary.HclInfo == nil {
				return fmt.Errorf("no HCL information returned for cluster %s", cfg.Cluster)
			}
			fmt.Println(report.NewHclReport(cfg.Host, cfg.Cluster, fromCache, hclSummary.Timestamp, hclSummary.HclInfo).Render())

			return nil
		},
	}

	cmd.Flags().BoolVar(&fromCache, "cached", false, "read the vCenter-cached health data instead of polling hosts")
	return cmd
}
