package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vsantypes "github.com/vmware/govmomi/vsan/types"
)

func TestNewHealthReport(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	free := true

	summary := &vsantypes.VsanClusterHealthSummary{
		Timestamp: &ts,
		ClusterStatus: &vsantypes.VsanClusterHealthSystemStatusResult{
			Status: "yellow",
			TrackedHostsStatus: []vsantypes.VsanHostHealthSystemStatusResult{
				{Hostname: "esx-02.example.com", Status: "green"},
				{Hostname: "esx-01.example.com", Status: "red"},
			},
		},
		ClomdLiveness: &vsantypes.VsanClusterClomdLivenessResult{
			IssueFound: true,
			ClomdLivenessResult: []vsantypes.VsanHostClomdLivenessResult{
				{Hostname: "esx-02.example.com", ClomdStat: "alive"},
				{Hostname: "esx-01.example.com", ClomdStat: "abnormal"},
			},
		},
		DiskBalance: &vsantypes.VsanClusterBalanceSummary{
			Disks: []vsantypes.VsanClusterBalancePerDiskInfo{
				{Uuid: "52b2", Fullness: 71, Variance: 12},
				{Uuid: "52a1", Fullness: 55, Variance: 3},
			},
		},
		PerfsvcHealth: &vsantypes.VsanPerfsvcHealthResult{
			EnoughFreeSpace: &free,
		},
		Groups: []vsantypes.VsanClusterHealthGroup{
			{
				GroupName:   "Network",
				GroupHealth: "green",
				GroupTests: []vsantypes.VsanClusterHealthTest{
					{TestName: "Hosts with connectivity issues", TestHealth: "green"},
				},
			},
		},
	}

	r := NewHealthReport("vc.example.com", "VSAN-Cluster", true, summary)

	assert.Equal(t, "2024-03-01T12:30:00Z", r.Timestamp)
	assert.True(t, r.FromCache)
	assert.Equal(t, "yellow", r.Status)

	// Host lists come back sorted by hostname.
	require.Len(t, r.Hosts, 2)
	assert.Equal(t, "esx-01.example.com", r.Hosts[0].Hostname)
	assert.Equal(t, "red", r.Hosts[0].Status)
	require.Len(t, r.ClomdHosts, 2)
	assert.Equal(t, "esx-01.example.com", r.ClomdHosts[0].Hostname)
	assert.Equal(t, "abnormal", r.ClomdHosts[0].Stat)

	require.NotNil(t, r.ClomdIssueFound)
	assert.True(t, *r.ClomdIssueFound)

	// Disks come back sorted by UUID.
	require.Len(t, r.Disks, 2)
	assert.Equal(t, "52a1", r.Disks[0].UUID)
	assert.Equal(t, int64(55), r.Disks[0].Fullness)

	require.NotNil(t, r.Perf)
	require.NotNil(t, r.Perf.EnoughFreeSpace)
	assert.True(t, *r.Perf.EnoughFreeSpace)
	assert.Nil(t, r.Perf.StatsObjectConsistent)

	require.Len(t, r.Groups, 1)
	assert.Equal(t, "Network", r.Groups[0].Name)
	require.Len(t, r.Groups[0].Tests, 1)
	assert.Equal(t, "Hosts with connectivity issues", r.Groups[0].Tests[0].Name)
}

func TestNewHealthReportEmptySummary(t *testing.T) {
	r := NewHealthReport("vc.example.com", "VSAN-Cluster", false, &vsantypes.VsanClusterHealthSummary{})

	assert.Empty(t, r.Timestamp)
	assert.Empty(t, r.Status)
	assert.Empty(t, r.Hosts)
	assert.Nil(t, r.ClomdIssueFound)
	assert.Empty(t, r.Disks)
	assert.Nil(t, r.Perf)
	assert.Empty(t, r.Groups)
}

func TestHealthReportRender(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	summary := &vsantypes.VsanClusterHealthSummary{
		Timestamp: &ts,
		ClusterStatus: &vsantypes.VsanClusterHealthSystemStatusResult{
			Status: "green",
			TrackedHostsStatus: []vsantypes.VsanHostHealthSystemStatusResult{
				{Hostname: "esx-01.example.com", Status: "green"},
			},
		},
		ClomdLiveness: &vsantypes.VsanClusterClomdLivenessResult{
			ClomdLivenessResult: []vsantypes.VsanHostClomdLivenessResult{
				{Hostname: "esx-01.example.com", ClomdStat: "alive"},
			},
		},
		DiskBalance: &vsantypes.VsanClusterBalanceSummary{
			Disks: []vsantypes.VsanClusterBalancePerDiskInfo{
				{Uuid: "52a1", Fullness: 55, Variance: 3},
			},
		},
		Groups: []vsantypes.VsanClusterHealthGroup{
			{
				GroupName:   "Network",
				GroupHealth: "green",
				GroupTests: []vsantypes.VsanClusterHealthTest{
					{TestName: "vSAN cluster partition", TestHealth: "green"},
				},
			},
		},
	}

	r := NewHealthReport("vc.example.com", "VSAN-Cluster", false, summary)

	out := r.Render(false)
	assert.Contains(t, out, "vc.example.com")
	assert.Contains(t, out, "VSAN-Cluster")
	assert.Contains(t, out, "2024-03-01T12:30:00Z")
	assert.Contains(t, out, "HOSTS")
	assert.Contains(t, out, "esx-01.example.com")
	assert.Contains(t, out, "CLOMD LIVENESS")
	assert.Contains(t, out, "DISK BALANCE")
	assert.Contains(t, out, "55%")
	assert.NotContains(t, out, "HEALTH CHECKS")

	verbose := r.Render(true)
	assert.Contains(t, verbose, "HEALTH CHECKS")
	assert.Contains(t, verbose, "vSAN cluster partition")
}
