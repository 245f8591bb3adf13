package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	vsantypes "github.com/vmware/govmomi/vsan/types"
)

// HclReport holds the shaped hardware-compatibility results for display.
type HclReport struct {
	Host      string `json:"host"`
	Cluster   string `json:"cluster"`
	FromCache bool   `json:"from_cache"`
	Timestamp string `json:"timestamp,omitempty"`

	DbAgeHealth  string `json:"hcl_db_age_health"`
	DbLastUpdate string `json:"hcl_db_last_update,omitempty"`

	Hosts []HclHost `json:"hosts"`
}

// HclHost is one host's compatibility results.
type HclHost struct {
	Hostname    string          `json:"hostname"`
	ReleaseName string          `json:"release_name"`
	Controllers []HclController `json:"controllers"`
}

// HclController is one storage controller's device/driver/firmware/tool
// support state against the compatibility database.
type HclController struct {
	DeviceName        string `json:"device_name"`
	DisplayName       string `json:"display_name"`
	UsedByVsan        *bool  `json:"used_by_vsan"`
	DeviceOnHcl       *bool  `json:"device_on_hcl"`
	DriverName        string `json:"driver_name"`
	DriverVersion     string `json:"driver_version"`
	DriverSupported   *bool  `json:"driver_supported"`
	DriverVersionsHcl string `json:"driver_versions_on_hcl,omitempty"`
	FwVersion         string `json:"fw_version"`
	FwSupported       *bool  `json:"fw_supported"`
	FwVersionsHcl     string `json:"fw_versions_on_hcl,omitempty"`
	ToolName          string `json:"tool_name,omitempty"`
	ToolVersion       string `json:"tool_version,omitempty"`
}

// NewHclReport shapes a VsanClusterHclInfo into a report; hosts are sorted by
// hostname.
func NewHclReport(host, cluster string, fromCache bool, timestamp *time.Time, info *vsantypes.VsanClusterHclInfo) *HclReport {
	r := &HclReport{
		Host:        host,
		Cluster:     cluster,
		FromCache:   fromCache,
		DbAgeHealth: info.HclDbAgeHealth,
	}
	if timestamp != nil {
		r.Timestamp = timestamp.Format(time.RFC3339)
	}
	if info.HclDbLastUpdate != nil {
		r.DbLastUpdate = info.HclDbLastUpdate.Format(time.RFC3339)
	}

	for _, h := range info.HostResults {
		hh := HclHost{
			Hostname:    h.Hostname,
			ReleaseName: h.ReleaseName,
		}
		for _, c := range h.Controllers {
			hh.Controllers = append(hh.Controllers, HclController{
				DeviceName:        c.DeviceName,
				DisplayName:       c.DeviceDisplayName,
				UsedByVsan:        c.UsedByVsan,
				DeviceOnHcl:       c.DeviceOnHcl,
				DriverName:        c.DriverName,
				DriverVersion:     c.DriverVersion,
				DriverSupported:   c.DriverVersionSupported,
				DriverVersionsHcl: strings.Join(c.DriverVersionsOnHcl, ", "),
				FwVersion:         c.FwVersion,
				FwSupported:       c.FwVersionSupported,
				FwVersionsHcl:     strings.Join(c.FwVersionOnHcl, ", "),
				ToolName:          c.ToolName,
				ToolVersion:       c.ToolVersion,
			})
		}
		r.Hosts = append(r.Hosts, hh)
	}
	sort.Slice(r.Hosts, func(i, j int) bool { return r.Hosts[i].Hostname < r.Hosts[j].Hostname })

	return r
}

// Render produces the styled HCL report.
func (r *HclReport) Render() string {
	var out strings.Builder

	out.WriteString(titleStyle.Render(fmt.Sprintf("vSAN HCL - %s", r.Host)) + "\n")

	var info strings.Builder
	info.WriteString(labelStyle.Render("Cluster:") + " " + r.Cluster + "\n")
	info.WriteString(labelStyle.Render("Cached data:") + " " + yesNoPlain(r.FromCache) + "\n")
	info.WriteString(labelStyle.Render("Timestamp:") + " " + orUnknown(r.Timestamp) + "\n")
	info.WriteString(labelStyle.Render("HCL DB Age:") + " " +
		fmt.Sprintf("%s (updated %s)", orUnknown(r.DbAgeHealth), orUnknown(r.DbLastUpdate)))
	out.WriteString(sectionStyle.Render(info.String()) + "\n")

	for _, h := range r.Hosts {
		out.WriteString(fmt.Sprintf("HOST %s (%s)\n", h.Hostname, h.ReleaseName))

		for _, c := range h.Controllers {
			var b strings.Builder
			b.WriteString(labelStyle.Render("Device:") + " " + c.DeviceName + "\n")
			b.WriteString(labelStyle.Render("Name:") + " " + c.DisplayName + "\n")
			b.WriteString(labelStyle.Render("Used by vSAN:") + " " + YesNo(c.UsedByVsan) + "\n")
			b.WriteString(labelStyle.Render("Supported:") + " " + YesNo(c.DeviceOnHcl) + "\n")
			b.WriteString(labelStyle.Render("Driver:") + " " + c.DriverName + "\n")
			b.WriteString(labelStyle.Render("  Version:") + " " + c.DriverVersion + "\n")
			b.WriteString(labelStyle.Render("  Supported:") + " " + YesNo(c.DriverSupported) + "\n")
			b.WriteString(labelStyle.Render("  HCL versions:") + " " + c.DriverVersionsHcl + "\n")
			b.WriteString(labelStyle.Render("Firmware Version:") + " " + c.FwVersion + "\n")
			b.WriteString(labelStyle.Render("  Supported:") + " " + YesNo(c.FwSupported) + "\n")
			b.WriteString(labelStyle.Render("  HCL versions:") + " " + c.FwVersionsHcl + "\n")
			b.WriteString(labelStyle.Render("Tool:") + " " + c.ToolName + "\n")
			b.WriteString(labelStyle.Render("  Version:") + " " + c.ToolVersion)
			out.WriteString(sectionStyle.Render(b.String()) + "\n")
		}

		if len(h.Controllers) == 0 {
			out.WriteString(mutedStyle.Render("  (no controllers reported)") + "\n")
		}
	}

	return out.String()
}
