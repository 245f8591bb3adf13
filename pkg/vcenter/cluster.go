package vcenter

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/property"
	"github.com/vmware/govmomi/vim25/mo"
	vimtypes "github.com/vmware/govmomi/vim25/types"
	vsanmethods "github.com/vmware/govmomi/vsan/methods"
	vsantypes "github.com/vmware/govmomi/vsan/types"
	"go.uber.org/zap"
)

// Well-known vCenter-side vSAN managed objects.
var (
	spaceReportSystem = vimtypes.ManagedObjectReference{
		Type:  "VsanSpaceReportSystem",
		Value: "vsan-cluster-space-report-system",
	}
	clusterHealthSystem = vimtypes.ManagedObjectReference{
		Type:  "VsanVcClusterHealthSystem",
		Value: "vsan-cluster-health-system",
	}
	clusterObjectSystem = vimtypes.ManagedObjectReference{
		Type:  "VsanObjectSystem",
		Value: "vsan-cluster-object-system",
	}
)

// Health summary field masks. The summary is expensive; each report asks only
// for the sections it prints.
var (
	HealthFields = []string{"timestamp", "clusterStatus", "clomdLiveness", "diskBalance", "perfsvcHealth", "groups"}
	HclFields    = []string{"timestamp", "hclInfo"}
)

// FindCluster walks every datacenter and returns the first compute cluster
// with the given name.
func (c *Client) FindCluster(ctx context.Context, name string) (*object.ClusterComputeResource, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	finder := find.NewFinder(c.vc.Client, true)

	datacenters, err := finder.DatacenterList(ctx, "*")
	if err != nil {
		return nil, fmt.Errorf("failed to list datacenters: %w", err)
	}

	for _, dc := range datacenters {
		finder.SetDatacenter(dc)
		cluster, err := finder.ClusterComputeResource(ctx, name)
		if err == nil {
			c.logger.Debug("found cluster",
				zap.String("cluster", name),
				zap.String("datacenter", dc.Name()))
			return cluster, nil
		}

		var notFound *find.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to search datacenter %s: %w", dc.Name(), err)
		}
	}

	return nil, fmt.Errorf("cluster %s is not found on %s", name, c.host)
}

// QuerySpaceUsage returns the cluster's vSAN space usage snapshot.
func (c *Client) QuerySpaceUsage(ctx context.Context, cluster vimtypes.ManagedObjectReference) (*vsantypes.VsanSpaceUsage, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	hc, err := c.healthClient(ctx)
	if err != nil {
		return nil, err
	}

	res, err := vsanmethods.VsanQuerySpaceUsage(ctx, hc, &vsantypes.VsanQuerySpaceUsage{
		This:    spaceReportSystem,
		Cluster: cluster,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query space usage: %w", err)
	}

	return &res.Returnval, nil
}

// QueryHealthSummary returns the cluster health summary restricted to the
// given fields. With fromCache set, vCenter serves its cached copy instead of
// polling the hosts.
func (c *Client) QueryHealthSummary(ctx context.Context, cluster vimtypes.ManagedObjectReference,
	fields []string, fromCache bool) (*vsantypes.VsanClusterHealthSummary, error) {

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	hc, err := c.healthClient(ctx)
	if err != nil {
		return nil, err
	}

	res, err := vsanmethods.VsanQueryVcClusterHealthSummary(ctx, hc, &vsantypes.VsanQueryVcClusterHealthSummary{
		This:            clusterHealthSystem,
		Cluster:         &cluster,
		IncludeObjUuids: vimtypes.NewBool(true),
		Fields:          fields,
		FetchFromCache:  vimtypes.NewBool(fromCache),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query health summary: %w", err)
	}

	return &res.Returnval, nil
}

// QueryObjectIdentities returns object identities with per-state health
// counts for the cluster.
func (c *Client) QueryObjectIdentities(ctx context.Context, cluster vimtypes.ManagedObjectReference) (*vsantypes.VsanObjectIdentityAndHealth, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	hc, err := c.healthClient(ctx)
	if err != nil {
		return nil, err
	}

	res, err := vsanmethods.VsanQueryObjectIdentities(ctx, hc, &vsantypes.VsanQueryObjectIdentities{
		This:               clusterObjectSystem,
		Cluster:            &cluster,
		IncludeHealth:      vimtypes.NewBool(true),
		IncludeObjIdentity: vimtypes.NewBool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query object identities: %w", err)
	}
	if res.Returnval == nil {
		return nil, fmt.Errorf("no object identities returned for cluster %s", cluster.Value)
	}

	return res.Returnval, nil
}

// QueryObjectInformation returns health and policy compliance for the given
// object UUIDs.
func (c *Client) QueryObjectInformation(ctx context.Context, cluster vimtypes.ManagedObjectReference,
	uuids []string) ([]vsantypes.VsanObjectInformation, error) {

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	hc, err := c.healthClient(ctx)
	if err != nil {
		return nil, err
	}

	specs := make([]vsantypes.VsanObjectQuerySpec, 0, len(uuids))
	for _, uuid := range uuids {
		specs = append(specs, vsantypes.VsanObjectQuerySpec{Uuid: uuid})
	}

	res, err := vsanmethods.VosQueryVsanObjectInformation(ctx, hc, &vsantypes.VosQueryVsanObjectInformation{
		This:                 clusterObjectSystem,
		Cluster:              &cluster,
		VsanObjectQuerySpecs: specs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query object information: %w", err)
	}

	return res.Returnval, nil
}

// VMNames resolves the display names of the given VM references, keyed by
// reference value.
func (c *Client) VMNames(ctx context.Context, refs []vimtypes.ManagedObjectReference) (map[string]string, error) {
	names := make(map[string]string, len(refs))
	if len(refs) == 0 {
		return names, nil
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	var vms []mo.VirtualMachine
	pc := property.DefaultCollector(c.vc.Client)
	if err := pc.Retrieve(ctx, refs, []string{"name"}, &vms); err != nil {
		return nil, fmt.Errorf("failed to resolve VM names: %w", err)
	}

	for _, vm := range vms {
		names[vm.Reference().Value] = vm.Name
	}

	return names, nil
}
