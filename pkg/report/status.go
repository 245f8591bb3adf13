package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Severity buckets a remote status value for display purposes.
type Severity int

const (
	SeverityNone Severity = iota // no status reported
	SeverityOK
	SeverityWarn
	SeverityCrit
)

// Style definitions
var (
	// Color palette
	primaryColor = lipgloss.Color("#7571f9")
	okColor      = lipgloss.Color("#42c767")
	warningColor = lipgloss.Color("#ff9f43")
	dangerColor  = lipgloss.Color("#ff6b6b")
	mutedColor   = lipgloss.Color("#6c757d")

	okStyle      = lipgloss.NewStyle().Foreground(okColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	dangerStyle  = lipgloss.NewStyle().Foreground(dangerColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(22)
)

// SeverityStyle returns the render style for a severity bucket.
func SeverityStyle(s Severity) lipgloss.Style {
	switch s {
	case SeverityOK:
		return okStyle
	case SeverityWarn:
		return warningStyle
	case SeverityCrit:
		return dangerStyle
	default:
		return mutedStyle
	}
}

// ClusterStatusSeverity maps a vSAN cluster/host status string to a severity.
func ClusterStatusSeverity(status string) Severity {
	switch status {
	case "":
		return SeverityNone
	case "green":
		return SeverityOK
	case "yellow":
		return SeverityWarn
	case "red":
		return SeverityCrit
	default:
		return SeverityCrit
	}
}

// ColorClusterStatus renders a cluster/host status with its severity color.
func ColorClusterStatus(status string) string {
	switch ClusterStatusSeverity(status) {
	case SeverityNone:
		return "no status"
	case SeverityOK:
		return okStyle.Render(status)
	case SeverityWarn:
		return warningStyle.Render(status)
	default:
		if status == "red" {
			return dangerStyle.Render(status)
		}
		return dangerStyle.Render(fmt.Sprintf("unknown status: %s", status))
	}
}

// ClomdSeverity maps a CLOMD liveness state to a severity.
func ClomdSeverity(stat string) Severity {
	switch stat {
	case "":
		return SeverityNone
	case "alive":
		return SeverityOK
	case "unknown":
		return SeverityWarn
	case "abnormal":
		return SeverityCrit
	default:
		return SeverityCrit
	}
}

// ColorClomdStat renders a CLOMD liveness state with its severity color.
func ColorClomdStat(stat string) string {
	switch ClomdSeverity(stat) {
	case SeverityNone:
		return "no status"
	case SeverityOK:
		return okStyle.Render(stat)
	case SeverityWarn:
		return warningStyle.Render(stat)
	default:
		if stat == "abnormal" {
			return dangerStyle.Render(stat)
		}
		return dangerStyle.Render(fmt.Sprintf("unknown status: %s", stat))
	}
}

// Object health states as reported by the vSAN object system. The buckets
// follow vim.host.VsanObjectHealth.VsanObjectHealthState.
var (
	objectHealthOK = map[string]bool{
		"healthy":  true,
		"datamove": true,
	}
	objectHealthWarn = map[string]bool{
		"nonavailabilityrelatedincompliance":                  true,
		"nonavailabilityrelatedincompliancewithpausedrebuild": true,
		"nonavailabilityrelatedincompliancewithpolicypending": true,
		"nonavailabilityrelatedreconfig":                      true,
		"reducedavailabilitywithactiverebuild":                true,
		"reducedavailabilitywithnorebuild":                    true,
		"reducedavailabilitywithpolicypending":                true,
		"reducedavailabilitywithnorebuilddelaytimer":          true,
	}
	objectHealthCrit = map[string]bool{
		"inaccessible":                              true,
		"reducedavailabilitywithpausedrebuild":      true,
		"reducedavailabilitywithpolicypendingfailed": true,
		"VsanObjectHealthState_Unknown":             true,
	}
)

// ObjectHealthSeverity maps a vSAN object health state to a severity.
func ObjectHealthSeverity(health string) Severity {
	switch {
	case health == "":
		return SeverityNone
	case objectHealthOK[health]:
		return SeverityOK
	case objectHealthWarn[health]:
		return SeverityWarn
	default:
		return SeverityCrit
	}
}

// ColorObjectHealth renders a vSAN object health state with its severity color.
func ColorObjectHealth(health string) string {
	switch ObjectHealthSeverity(health) {
	case SeverityNone:
		return "no status"
	case SeverityOK:
		return okStyle.Render(health)
	case SeverityWarn:
		return warningStyle.Render(health)
	default:
		if objectHealthCrit[health] {
			return dangerStyle.Render(health)
		}
		return dangerStyle.Render(fmt.Sprintf("unknown status: %s", health))
	}
}

// ComplianceSeverity maps a storage policy compliance status to a severity.
func ComplianceSeverity(status string) Severity {
	switch status {
	case "":
		return SeverityNone
	case "compliant":
		return SeverityOK
	case "notApplicable":
		return SeverityNone
	case "nonCompliant":
		return SeverityCrit
	default:
		return SeverityCrit
	}
}

// ColorCompliance renders a storage policy compliance status.
func ColorCompliance(status string) string {
	switch status {
	case "":
		return "no status"
	case "compliant":
		return okStyle.Render(status)
	case "nonCompliant":
		return dangerStyle.Render(status)
	case "notApplicable":
		return status
	default:
		return dangerStyle.Render(fmt.Sprintf("unknown status: %s", status))
	}
}

// YesNo renders a tri-state flag where true is the good answer.
func YesNo(v *bool) string {
	if v == nil {
		return warningStyle.Render("Unknown")
	}
	if *v {
		return okStyle.Render("Yes")
	}
	return dangerStyle.Render("No")
}

// NoYes renders a tri-state flag where false is the good answer, e.g.
// "issues found".
func NoYes(v *bool) string {
	if v == nil {
		return warningStyle.Render("Unknown")
	}
	if *v {
		return dangerStyle.Render("Yes")
	}
	return okStyle.Render("No")
}

// ColorPercentInc colors a percentage where higher is worse (used capacity).
func ColorPercentInc(value float64) string {
	text := fmt.Sprintf("%.2f%%", value)
	switch {
	case value < 60:
		return okStyle.Render(text)
	case value < 80:
		return warningStyle.Render(text)
	default:
		return dangerStyle.Render(text)
	}
}

// ColorPercentDec colors a percentage where lower is worse (free capacity).
func ColorPercentDec(value float64) string {
	text := fmt.Sprintf("%.2f%%", value)
	switch {
	case value > 40:
		return okStyle.Render(text)
	case value > 20:
		return warningStyle.Render(text)
	default:
		return dangerStyle.Render(text)
	}
}
