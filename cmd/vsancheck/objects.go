package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	vimtypes "github.com/vmware/govmomi/vim25/types"

	"vsancheck/pkg/report"
	"vsancheck/pkg/vcenter"
)

func objectsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "objects",
		Short: "Show per-object health and policy compliance",
		Long: `List the cluster's vSAN objects joined with their owning VM, health
state, and storage policy compliance, sorted by VM name and object type.`,
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

			identities, err := client.QueryObjectIdentities(ctx, ref)
			if err != nil {
				return err
			}

			uuids := make([]string, 0, len(identities.Identities))
			var vmRefs []vimtypes.ManagedObjectReference
			seen := make(map[string]bool)
			for _, ident := range identities.Identities {
				uuids = append(uuids, ident.Uuid)
				if ident.Vm != nil && !seen[ident.Vm.Value] {
					seen[ident.Vm.Value] = true
					vmRefs = append(vmRefs, *ident.Vm)
				}
			}

			infos, err := client.QueryObjectInformation(ctx, ref, uuids)
			if err != nil {
				return err
			}

			vmNames, err := client.VMNames(ctx, vmRefs)
			if err != nil {
				return err
			}

			rep := report.NewObjectsReport(cfg.Host, cfg.Cluster, identities, infos, vmNames)

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
