package vcenter

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/simulator"
	"github.com/vmware/govmomi/vim25"
	vimtypes "github.com/vmware/govmomi/vim25/types"
	"go.uber.org/zap/zaptest"
)

// vpxServer starts a simulated vCenter with the default VPX inventory
// (datacenter DC0 with cluster DC0_C0).
func vpxServer(t *testing.T) *simulator.Server {
	t.Helper()

	model := simulator.VPX()
	require.NoError(t, model.Create())
	t.Cleanup(model.Remove)

	// Pin the accepted credentials so the simulator rejects bad logins
	// instead of accepting any non-empty username/password.
	model.Service.Listen = &url.URL{User: url.UserPassword("user", "pass")}

	s := model.Service.NewServer()
	t.Cleanup(s.Close)

	return s
}

func TestConnect(t *testing.T) {
	s := vpxServer(t)
	ctx := context.Background()

	c, err := connect(ctx, s.URL, true, s.URL.Hostname(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer c.Close(ctx)

	assert.Equal(t, s.URL.Hostname(), c.Host())
}

func TestConnectBadCredentials(t *testing.T) {
	s := vpxServer(t)

	u := *s.URL
	u.User = url.UserPassword("admin", "wrong-password")

	_, err := connect(context.Background(), &u, true, u.Hostname(), zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestOperationDeadline(t *testing.T) {
	s := vpxServer(t)
	ctx := context.Background()

	c, err := connect(ctx, s.URL, true, s.URL.Hostname(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer c.Close(ctx)

	// Each remote operation gets its own deadline, even when the caller
	// passes an unbounded context.
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()

	deadline, ok := opCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultTimeout), deadline, 5*time.Second)
}

func TestCheckEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		apiVersion string
		apiType    string
		wantErr    bool
	}{
		{"supported vCenter", "6.7", "VirtualCenter", false},
		{"patch version", "7.0.3", "VirtualCenter", false},
		{"too old", "5.5", "VirtualCenter", true},
		{"unparseable version", "dev", "VirtualCenter", true},
		{"standalone host", "7.0.3", "HostAgent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{
				host: "vc.example.com",
				vc: &govmomi.Client{
					Client: &vim25.Client{
						ServiceContent: vimtypes.ServiceContent{
							About: vimtypes.AboutInfo{
								ApiVersion: tt.apiVersion,
								ApiType:    tt.apiType,
							},
						},
					},
				},
			}

			err := c.checkEndpoint()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindCluster(t *testing.T) {
	s := vpxServer(t)
	ctx := context.Background()

	c, err := connect(ctx, s.URL, true, s.URL.Hostname(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer c.Close(ctx)

	cluster, err := c.FindCluster(ctx, "DC0_C0")
	require.NoError(t, err)
	assert.Equal(t, "DC0_C0", cluster.Name())
}

func TestFindClusterNotFound(t *testing.T) {
	s := vpxServer(t)
	ctx := context.Background()

	c, err := connect(ctx, s.URL, true, s.URL.Hostname(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer c.Close(ctx)

	_, err = c.FindCluster(ctx, "no-such-cluster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestVMNames(t *testing.T) {
	s := vpxServer(t)
	ctx := context.Background()

	c, err := connect(ctx, s.URL, true, s.URL.Hostname(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer c.Close(ctx)

	finder := find.NewFinder(c.vc.Client, true)
	dc, err := finder.Datacenter(ctx, "DC0")
	require.NoError(t, err)
	finder.SetDatacenter(dc)

	vms, err := finder.VirtualMachineList(ctx, "*")
	require.NoError(t, err)
	require.NotEmpty(t, vms)

	refs := make([]vimtypes.ManagedObjectReference, 0, len(vms))
	for _, vm := range vms {
		refs = append(refs, vm.Reference())
	}

	names, err := c.VMNames(ctx, refs)
	require.NoError(t, err)
	require.Len(t, names, len(refs))
	for _, vm := range vms {
		assert.Equal(t, vm.Name(), names[vm.Reference().Value])
	}
}

func TestVMNamesEmpty(t *testing.T) {
	s := vpxServer(t)
	ctx := context.Background()

	c, err := connect(ctx, s.URL, true, s.URL.Hostname(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer c.Close(ctx)

	names, err := c.VMNames(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}
