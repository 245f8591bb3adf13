package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	vsantypes "github.com/vmware/govmomi/vsan/types"
)

// HealthReport holds the shaped cluster health summary for display.
type HealthReport struct {
	Host      string `json:"host"`
	Cluster   string `json:"cluster"`
	FromCache bool   `json:"from_cache"`
	Timestamp string `json:"timestamp,omitempty"`

	Status string       `json:"cluster_status,omitempty"`
	Hosts  []HostStatus `json:"hosts,omitempty"`

	ClomdIssueFound *bool         `json:"clomd_issue_found,omitempty"`
	ClomdHosts      []ClomdStatus `json:"clomd_hosts,omitempty"`

	Disks []DiskBalance `json:"disk_balance,omitempty"`

	Perf *PerfServiceHealth `json:"performance_service,omitempty"`

	Groups []HealthGroup `json:"groups,omitempty"`
}

// HostStatus is one tracked host's aggregate health state.
type HostStatus struct {
	Hostname string `json:"hostname"`
	Status   string `json:"status"`
}

// ClomdStatus is one host's CLOMD liveness state.
type ClomdStatus struct {
	Hostname string `json:"hostname"`
	Stat     string `json:"stat"`
}

// DiskBalance is one disk's fullness/variance pair from the balance summary.
type DiskBalance struct {
	UUID     string `json:"uuid"`
	Fullness int64  `json:"fullness_percent"`
	Variance int64  `json:"variance_percent"`
}

// PerfServiceHealth carries the performance service checks. Fields are
// tri-state: nil means the service did not report.
type PerfServiceHealth struct {
	EnoughFreeSpace       *bool `json:"enough_free_space"`
	StatsObjectConsistent *bool `json:"stats_object_consistent"`
	VerboseMode           *bool `json:"verbose_mode"`
}

// HealthGroup is one group of health checks with its rolled-up state.
type HealthGroup struct {
	Name   string       `json:"name"`
	Health string       `json:"health"`
	Tests  []HealthTest `json:"tests,omitempty"`
}

// HealthTest is a single health check inside a group.
type HealthTest struct {
	Name   string `json:"name"`
	Health string `json:"health"`
}

// NewHealthReport shapes a VsanClusterHealthSummary into a report. Host lists
// are sorted by hostname and disks by UUID for stable output.
func NewHealthReport(host, cluster string, fromCache bool, summary *vsantypes.VsanClusterHealthSummary) *HealthReport {
	r := &HealthReport{
		Host:      host,
		Cluster:   cluster,
		FromCache: fromCache,
	}
	if summary.Timestamp != nil {
		r.Timestamp = summary.Timestamp.Format(time.RFC3339)
	}

	if cs := summary.ClusterStatus; cs != nil {
		r.Status = cs.Status
		for _, hs := range cs.TrackedHostsStatus {
			r.Hosts = append(r.Hosts, HostStatus{Hostname: hs.Hostname, Status: hs.Status})
		}
		sort.Slice(r.Hosts, func(i, j int) bool { return r.Hosts[i].Hostname < r.Hosts[j].Hostname })
	}

	if cl := summary.ClomdLiveness; cl != nil {
		issue := cl.IssueFound
		r.ClomdIssueFound = &issue
		for _, h := range cl.ClomdLivenessResult {
			r.ClomdHosts = append(r.ClomdHosts, ClomdStatus{Hostname: h.Hostname, Stat: h.ClomdStat})
		}
		sort.Slice(r.ClomdHosts, func(i, j int) bool { return r.ClomdHosts[i].Hostname < r.ClomdHosts[j].Hostname })
	}

	if db := summary.DiskBalance; db != nil {
		for _, d := range db.Disks {
			r.Disks = append(r.Disks, DiskBalance{UUID: d.Uuid, Fullness: d.Fullness, Variance: d.Variance})
		}
		sort.Slice(r.Disks, func(i, j int) bool { return r.Disks[i].UUID < r.Disks[j].UUID })
	}

	if ph := summary.PerfsvcHealth; ph != nil {
		r.Perf = &PerfServiceHealth{
			EnoughFreeSpace:       ph.EnoughFreeSpace,
			StatsObjectConsistent: ph.StatsObjectConsistent,
			VerboseMode:           ph.VerboseModeStatus,
		}
	}

	for _, g := range summary.Groups {
		group := HealthGroup{Name: g.GroupName, Health: g.GroupHealth}
		for _, t := range g.GroupTests {
			group.Tests = append(group.Tests, HealthTest{Name: t.TestName, Health: t.TestHealth})
		}
		r.Groups = append(r.Groups, group)
	}

	return r
}

// Render produces the styled health report. With verbose set, the individual
// health check groups are included.
func (r *HealthReport) Render(verbose bool) string {
	var out strings.Builder

	out.WriteString(titleStyle.Render(fmt.Sprintf("vSAN HEALTH - %s", r.Host)) + "\n")

	var info strings.Builder
	info.WriteString(labelStyle.Render("Cluster:") + " " + r.Cluster + "\n")
	info.WriteString(labelStyle.Render("Cached data:") + " " + yesNoPlain(r.FromCache) + "\n")
	info.WriteString(labelStyle.Render("Timestamp:") + " " + orUnknown(r.Timestamp) + "\n")
	info.WriteString(labelStyle.Render("Cluster Status:") + " " + ColorClusterStatus(r.Status))
	out.WriteString(sectionStyle.Render(info.String()) + "\n")

	if len(r.Hosts) > 0 {
		t := newStatusTable("HOST", "STATUS")
		for _, h := range r.Hosts {
			t.Row(h.Hostname, ColorClusterStatus(h.Status))
		}
		out.WriteString("HOSTS\n" + t.Render() + "\n")
	}

	if r.ClomdIssueFound != nil || len(r.ClomdHosts) > 0 {
		out.WriteString(fmt.Sprintf("CLOMD LIVENESS - Issues Found: %s\n", NoYes(r.ClomdIssueFound)))
		t := newStatusTable("HOST", "STATUS")
		for _, h := range r.ClomdHosts {
			t.Row(h.Hostname, ColorClomdStat(h.Stat))
		}
		out.WriteString(t.Render() + "\n")
	}

	if len(r.Disks) > 0 {
		t := newStatusTable("DISK UUID", "USAGE", "VARIANCE")
		for _, d := range r.Disks {
			t.Row(d.UUID, fmt.Sprintf("%3d%%", d.Fullness), fmt.Sprintf("%3d%%", d.Variance))
		}
		out.WriteString("DISK BALANCE\n" + t.Render() + "\n")
	}

	if r.Perf != nil {
		var perf strings.Builder
		perf.WriteString(labelStyle.Render("Enough Free Space:") + " " + YesNo(r.Perf.EnoughFreeSpace) + "\n")
		perf.WriteString(labelStyle.Render("Stats Consistent:") + " " + YesNo(r.Perf.StatsObjectConsistent) + "\n")
		perf.WriteString(labelStyle.Render("Verbose Mode:") + " " + NoYes(r.Perf.VerboseMode))
		out.WriteString("PERFORMANCE SERVICE\n" + sectionStyle.Render(perf.String()) + "\n")
	}

	if verbose && len(r.Groups) > 0 {
		t := newStatusTable("GROUP", "CHECK", "STATUS")
		for _, g := range r.Groups {
			t.Row(g.Name, "", ColorClusterStatus(g.Health))
			for _, check := range g.Tests {
				t.Row("", check.Name, ColorClusterStatus(check.Health))
			}
		}
		out.WriteString("HEALTH CHECKS\n" + t.Render() + "\n")
	}

	return out.String()
}

func newStatusTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(primaryColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			return rowStyle
		}).
		Headers(headers...)
}

func yesNoPlain(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
