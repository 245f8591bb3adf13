package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	vsantypes "github.com/vmware/govmomi/vsan/types"
)

// CapacityReport holds the shaped cluster space usage for display.
type CapacityReport struct {
	Host    string `json:"host"`
	Cluster string `json:"cluster"`

	TotalB       int64 `json:"total_capacity_bytes"`
	FreeB        int64 `json:"free_capacity_bytes"`
	UsedB        int64 `json:"used_capacity_bytes"`
	UncommittedB int64 `json:"uncommitted_bytes"`

	FreePct        float64 `json:"free_percent"`
	UsedPct        float64 `json:"used_percent"`
	UncommittedPct float64 `json:"uncommitted_percent"`

	Efficiency  *EfficiencyState  `json:"data_efficiency,omitempty"`
	ObjectTypes []ObjectTypeUsage `json:"space_usage_by_object_type"`
}

// EfficiencyState holds dedupe/compression capacity figures when the cluster
// has data efficiency enabled.
type EfficiencyState struct {
	MetadataB       int64   `json:"metadata_size_bytes"`
	LogicalB        int64   `json:"logical_capacity_bytes"`
	LogicalUsedB    int64   `json:"logical_used_bytes"`
	LogicalUsedPct  float64 `json:"logical_used_percent"`
	PhysicalB       int64   `json:"physical_capacity_bytes"`
	PhysicalUsedB   int64   `json:"physical_used_bytes"`
	PhysicalUsedPct float64 `json:"physical_used_percent"`
}

// ObjectTypeUsage is one row of the per-object-type space breakdown.
type ObjectTypeUsage struct {
	ObjType   string `json:"obj_type"`
	UsedB     int64  `json:"used_bytes"`
	ReservedB int64  `json:"reserved_bytes"`
	OverheadB int64  `json:"overhead_bytes"`
	ThickB    int64  `json:"thick_bytes"`
}

// NewCapacityReport shapes a VsanSpaceUsage snapshot into a report. Rows are
// sorted by object type for stable output.
func NewCapacityReport(host, cluster string, usage *vsantypes.VsanSpaceUsage) *CapacityReport {
	r := &CapacityReport{
		Host:         host,
		Cluster:      cluster,
		TotalB:       usage.TotalCapacityB,
		FreeB:        usage.FreeCapacityB,
		UsedB:        usage.TotalCapacityB - usage.FreeCapacityB,
		UncommittedB: usage.UncommittedB,
	}
	r.FreePct = Percent(r.FreeB, r.TotalB)
	r.UsedPct = Percent(r.UsedB, r.TotalB)
	r.UncommittedPct = Percent(r.UncommittedB, r.TotalB)

	if ec := usage.EfficientCapacity; ec != nil {
		r.Efficiency = &EfficiencyState{
			MetadataB:       ec.DedupMetadataSize,
			LogicalB:        ec.LogicalCapacity,
			LogicalUsedB:    ec.LogicalCapacityUsed,
			LogicalUsedPct:  Percent(ec.LogicalCapacityUsed, ec.LogicalCapacity),
			PhysicalB:       ec.PhysicalCapacity,
			PhysicalUsedB:   ec.PhysicalCapacityUsed,
			PhysicalUsedPct: Percent(ec.PhysicalCapacityUsed, ec.PhysicalCapacity),
		}
	}

	if usage.SpaceDetail != nil {
		for _, obj := range usage.SpaceDetail.SpaceUsageByObjectType {
			r.ObjectTypes = append(r.ObjectTypes, ObjectTypeUsage{
				ObjType:   obj.ObjType,
				UsedB:     obj.UsedB,
				ReservedB: obj.ReservedCapacityB,
				OverheadB: obj.OverheadB,
				ThickB:    obj.OverReservedB,
			})
		}
		sort.Slice(r.ObjectTypes, func(i, j int) bool {
			return r.ObjectTypes[i].ObjType < r.ObjectTypes[j].ObjType
		})
	}

	return r
}

// Render produces the styled capacity report.
func (r *CapacityReport) Render() string {
	var out strings.Builder

	out.WriteString(titleStyle.Render(fmt.Sprintf("vSAN CAPACITY - %s", r.Host)) + "\n")

	var summary strings.Builder
	summary.WriteString(labelStyle.Render("Cluster:") + " " + r.Cluster + "\n")
	summary.WriteString(labelStyle.Render("Total Capacity:") + " " + FormatBytes(r.TotalB) + "\n")
	summary.WriteString(labelStyle.Render("Free Capacity:") + " " +
		fmt.Sprintf("%s (%s)", FormatBytes(r.FreeB), ColorPercentDec(r.FreePct)) + "\n")
	summary.WriteString(labelStyle.Render("Used Capacity:") + " " +
		fmt.Sprintf("%s (%s)", FormatBytes(r.UsedB), ColorPercentInc(r.UsedPct)) + "\n")
	summary.WriteString(labelStyle.Render("Committed Capacity:") + " " +
		fmt.Sprintf("%s (%s)", FormatBytes(r.UncommittedB), ColorPercentInc(r.UncommittedPct)) + "\n")
	summary.WriteString(labelStyle.Render("Usage:") + " " + renderUsageBar(r.UsedPct, 40))
	out.WriteString(sectionStyle.Render(summary.String()) + "\n")

	out.WriteString(r.renderEfficiency())

	if len(r.ObjectTypes) > 0 {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(primaryColor)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == 0 {
					return headerStyle
				}
				return rowStyle
			}).
			Headers("TYPE", "USED", "RESERVED", "OVERHEAD", "THICK")

		for _, obj := range r.ObjectTypes {
			t.Row(
				obj.ObjType,
				FormatBytes(obj.UsedB),
				FormatBytes(obj.ReservedB),
				FormatBytes(obj.OverheadB),
				FormatBytes(obj.ThickB),
			)
		}
		out.WriteString("SPACE USAGE DETAILS\n" + t.Render() + "\n")
	}

	return out.String()
}

func (r *CapacityReport) renderEfficiency() string {
	if r.Efficiency == nil {
		return mutedStyle.Render("Data Efficiency: Not Enabled") + "\n\n"
	}

	e := r.Efficiency
	var b strings.Builder
	b.WriteString(okStyle.Render("Data Efficiency: Enabled") + "\n")
	b.WriteString(labelStyle.Render("Metadata size:") + " " + FormatBytes(e.MetadataB) + "\n")
	b.WriteString(labelStyle.Render("Logical size:") + " " + FormatBytes(e.LogicalB) + "\n")
	b.WriteString(labelStyle.Render("Logical used:") + " " +
		fmt.Sprintf("%s (%s)", FormatBytes(e.LogicalUsedB), ColorPercentInc(e.LogicalUsedPct)) + "\n")
	b.WriteString(labelStyle.Render("Physical size:") + " " + FormatBytes(e.PhysicalB) + "\n")
	b.WriteString(labelStyle.Render("Physical used:") + " " +
		fmt.Sprintf("%s (%s)", FormatBytes(e.PhysicalUsedB), ColorPercentInc(e.PhysicalUsedPct)))
	return sectionStyle.Render(b.String()) + "\n"
}

// renderUsageBar draws a capacity bar colored by the usage thresholds.
func renderUsageBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(float64(width) * percent / 100)
	empty := width - filled

	color := okColor
	if percent >= 80 {
		color = dangerColor
	} else if percent >= 60 {
		color = warningColor
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	bar += lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")).Render(strings.Repeat("░", empty))

	return fmt.Sprintf("%s %.1f%%", bar, percent)
}
