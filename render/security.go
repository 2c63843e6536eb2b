package render

import (
	"fmt"
	"strings"

	"demodoc/tfoutput"
)

const securityUnavailable = "Security appliance outputs unavailable."

// SecuritySection lists appliance addresses and admin credentials per region.
// Categories without data are omitted entirely.
func SecuritySection(ctx Context) string {
	var groups []string

	if len(ctx.TGWConnect) > 0 {
		lines := []string{"#### AWS Transit Gateway Connect (Fortinet)"}
		for _, region := range tfoutput.SortedKeys(ctx.TGWConnect) {
			fc := ctx.TGWConnect[region]
			mgmtIP := tfoutput.FirstNonEmpty(fc.ManagementIP, fc.PrivateIP, "pending")
			lines = append(lines, fmt.Sprintf("- **%s** — mgmt IP `%s`%s (%s)",
				region, mgmtIP, routeTableNote(fc), fc.Credentials.String()))
		}
		groups = append(groups, strings.Join(lines, "\n"))
	}

	if len(ctx.GWLB) > 0 {
		lines := []string{"#### AWS GWLB Palo Alto"}
		for _, region := range tfoutput.SortedKeys(ctx.GWLB) {
			gw := ctx.GWLB[region]
			ips := "pending"
			if len(gw.PrivateIPs) > 0 {
				ips = strings.Join(gw.PrivateIPs, ", ")
			}
			lines = append(lines, fmt.Sprintf("- **%s** — firewalls `%s` (%s)", region, ips, gw.Credentials.String()))
		}
		groups = append(groups, strings.Join(lines, "\n"))
	}

	if len(ctx.AzureASA) > 0 {
		lines := []string{"#### Azure ASA NVAs"}
		for _, region := range tfoutput.SortedKeys(ctx.AzureASA) {
			asa := ctx.AzureASA[region]
			lines = append(lines, fmt.Sprintf("- **%s** — private `%s` / public `%s` (%s)",
				region, orDefault(asa.PrivateIP, "pending"), orDefault(asa.PublicIP, "n/a"), asa.Credentials.String()))
		}
		groups = append(groups, strings.Join(lines, "\n"))
	}

	if len(ctx.GCPCheckpoint) > 0 {
		lines := []string{"#### GCP Check Point Firewalls"}
		for _, region := range tfoutput.SortedKeys(ctx.GCPCheckpoint) {
			cp := ctx.GCPCheckpoint[region]
			lines = append(lines, fmt.Sprintf("- **%s** — private `%s` (%s)",
				region, orDefault(cp.PrivateIP, "pending"), cp.Credentials.String()))
		}
		groups = append(groups, strings.Join(lines, "\n"))
	}

	if len(groups) == 0 {
		return securityUnavailable
	}
	return strings.Join(groups, "\n\n")
}

func routeTableNote(fc FortinetConnector) string {
	var bits []string
	if fc.InspectionRouteTable != "" {
		bits = append(bits, fmt.Sprintf("inspection RT `%s`", fc.InspectionRouteTable))
	}
	if fc.ApplianceRouteTable != "" {
		bits = append(bits, fmt.Sprintf("appliance RT `%s`", fc.ApplianceRouteTable))
	}
	if len(bits) == 0 {
		return ""
	}
	return " (" + strings.Join(bits, ", ") + ")"
}
