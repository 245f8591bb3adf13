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

func healthCmd() *cobra.Command {
	var (
		jsonOutput bool
		fromCache  bool
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Show the cluster vSAN health summary",
		Long: `Show the vCenter-computed cluster health summary: overall and
per-host status, CLOMD liveness, disk balance, and performance service
health. With --verbose the individual health check groups are included.

The summary is computed live on the hosts unless --cached is given.`,
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

			summary, err := client.QueryHealthSummary(ctx, cluster.Reference(), vcenter.HealthFields, fromCache)
			if err != nil {
				return err
			}

			rep := report.NewHealthReport(cfg.Host, cfg.Cluster, fromCache, summary)

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}

			fmt.Println(rep.Render(verbose))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "output as JSON")
	cmd.Flags().BoolVar(&fromCache, "cached", false, "read the vCenter-cached health data instead of polling hosts")
	return cmd
}
