package report

import (
	"fmt"
	"sort"
	"strings"

	vsantypes "github.com/vmware/govmomi/vsan/types"
)

// vmNameWidth caps VM names in the objects table.
const vmNameWidth = 30

// ObjectsReport holds per-object health and policy compliance rows.
type ObjectsReport struct {
	Host    string `json:"host"`
	Cluster string `json:"cluster"`

	TotalObjects int64               `json:"total_objects"`
	HealthCounts []ObjectHealthCount `json:"health_counts,omitempty"`

	Rows []ObjectRow `json:"objects"`
}

// ObjectHealthCount aggregates how many objects sit in one health state.
type ObjectHealthCount struct {
	Health string `json:"health"`
	Count  int64  `json:"count"`
}

// ObjectRow is one vSAN object joined with its owning VM, health, and
// storage policy compliance.
type ObjectRow struct {
	VMName     string `json:"vm_name,omitempty"`
	Type       string `json:"type"`
	UUID       string `json:"uuid"`
	Health     string `json:"health,omitempty"`
	Compliance string `json:"compliance,omitempty"`
}

// NewObjectsReport joins object identities with per-object information and
// resolved VM names. vmNames is keyed by the VM managed object reference
// value; rows are sorted by VM name then object type.
func NewObjectsReport(host, cluster string, identities *vsantypes.VsanObjectIdentityAndHealth,
	infos []vsantypes.VsanObjectInformation, vmNames map[string]string) *ObjectsReport {

	r := &ObjectsReport{
		Host:    host,
		Cluster: cluster,
	}

	if identities.Health != nil {
		for _, d := range identities.Health.ObjectHealthDetail {
			r.TotalObjects += int64(d.NumObjects)
			r.HealthCounts = append(r.HealthCounts, ObjectHealthCount{
				Health: d.Health,
				Count:  int64(d.NumObjects),
			})
		}
		sort.Slice(r.HealthCounts, func(i, j int) bool {
			return r.HealthCounts[i].Health < r.HealthCounts[j].Health
		})
	}

	infoByUUID := make(map[string]*vsantypes.VsanObjectInformation, len(infos))
	for i := range infos {
		infoByUUID[infos[i].VsanObjectUuid] = &infos[i]
	}

	for _, ident := range identities.Identities {
		row := ObjectRow{
			Type: ident.Type,
			UUID: ident.Uuid,
		}
		if ident.Vm != nil {
			row.VMName = vmNames[ident.Vm.Value]
		}
		if info := infoByUUID[ident.Uuid]; info != nil {
			row.Health = info.VsanHealth
			if info.SpbmComplianceResult != nil {
				row.Compliance = info.SpbmComplianceResult.ComplianceStatus
			}
		}
		r.Rows = append(r.Rows, row)
	}
	sort.Slice(r.Rows, func(i, j int) bool {
		if r.Rows[i].VMName != r.Rows[j].VMName {
			return r.Rows[i].VMName < r.Rows[j].VMName
		}
		return r.Rows[i].Type < r.Rows[j].Type
	})

	return r
}

// Render produces the styled objects report.
func (r *ObjectsReport) Render() string {
	var out strings.Builder

	out.WriteString(titleStyle.Render(fmt.Sprintf("vSAN OBJECTS - %s", r.Host)) + "\n")

	var info strings.Builder
	info.WriteString(labelStyle.Render("Cluster:") + " " + r.Cluster + "\n")
	info.WriteString(labelStyle.Render("Objects:") + " " + fmt.Sprintf("%d", r.TotalObjects))
	for _, hc := range r.HealthCounts {
		info.WriteString("\n" + labelStyle.Render("  "+hc.Health+":") + " " +
			SeverityStyle(ObjectHealthSeverity(hc.Health)).Render(fmt.Sprintf("%d", hc.Count)))
	}
	out.WriteString(sectionStyle.Render(info.String()) + "\n")

	if len(r.Rows) == 0 {
		out.WriteString(mutedStyle.Render("No vSAN objects found") + "\n")
		return out.String()
	}

	t := newStatusTable("VM", "TYPE", "UUID", "STATUS", "POLICY")
	for _, row := range r.Rows {
		t.Row(
			TruncateName(row.VMName, vmNameWidth),
			row.Type,
			row.UUID,
			ColorObjectHealth(row.Health),
			ColorCompliance(row.Compliance),
		)
	}
	out.WriteString(t.Render() + "\n")

	return out.String()
}
