package render

import (
	"fmt"
	"strings"

	"demodoc/tfoutput"
)

// Names shown in the inventory when an appliance has not been deployed yet.
const (
	DefaultFortinetName   = "skyforge-us-east-1-fortinet"
	DefaultPaloAltoName   = "skyforge-us-east-1-gwlb"
	DefaultASAName        = "vm-skyforge-uswest2-asa"
	DefaultCheckPointName = "cp-us-central1-firewall"
)

// pickRegion returns the entry for the first preferred region that holds data, else
// the first entry with data in lexicographic region order.
func pickRegion[V any](m map[string]V, hasData func(V) bool, preferred ...string) (V, bool) {
	for _, region := range preferred {
		if v, ok := m[region]; ok && hasData(v) {
			return v, true
		}
	}
	for _, region := range tfoutput.SortedKeys(m) {
		if v := m[region]; hasData(v) {
			return v, true
		}
	}
	var zero V
	return zero, false
}

func (f FortinetConnector) hasData() bool {
	return f.InstanceID != "" || f.ManagementIP != "" || f.PrivateIP != "" || f.Credentials != nil ||
		f.InspectionRouteTable != "" || f.ApplianceRouteTable != ""
}

func (p PaloAltoGWLB) hasData() bool { return len(p.PrivateIPs) > 0 || p.Credentials != nil }

func (a ASAAppliance) hasData() bool { return a != ASAAppliance{} }

func (c CheckPointFirewall) hasData() bool { return c != CheckPointFirewall{} }

// ApplianceInventory emits exactly one line per appliance category: the deployed
// identifier and addresses when known, else the default name and the input to set.
func ApplianceInventory(ctx Context) string {
	lines := make([]string, 0, 4)

	if len(ctx.TGWConnect) > 0 {
		fc, _ := pickRegion(ctx.TGWConnect, FortinetConnector.hasData, "us-east-1")
		lines = append(lines, fmt.Sprintf("- **Fortinet TGW Connect** (`%s`) — management IP `%s`",
			orDefault(fc.InstanceID, DefaultFortinetName), orDefault(fc.ManagementIP, "pending")))
	} else {
		lines = append(lines, fmt.Sprintf("- **Fortinet TGW Connect** (`%s`) — deploy via `transit_gateway_connect.connector`", DefaultFortinetName))
	}

	if len(ctx.GWLB) > 0 {
		palo, _ := pickRegion(ctx.GWLB, PaloAltoGWLB.hasData, "ap-northeast-1", "us-east-1")
		ips := "pending"
		if len(palo.PrivateIPs) > 0 {
			ips = strings.Join(palo.PrivateIPs, ", ")
		}
		lines = append(lines, fmt.Sprintf("- **Palo Alto GWLB** (`%s`) — endpoint IPs `%s`", DefaultPaloAltoName, ips))
	} else {
		lines = append(lines, fmt.Sprintf("- **Palo Alto GWLB** (`%s`) — enable `enable_gateway_lb` in AWS regions", DefaultPaloAltoName))
	}

	if asa, ok := pickRegion(ctx.AzureASA, ASAAppliance.hasData, "uswest2"); ok {
		lines = append(lines, fmt.Sprintf("- **Azure ASA** (`%s`) — private `%s` public `%s`",
			orDefault(asa.VMID, DefaultASAName), orDefault(asa.PrivateIP, "pending"), orDefault(asa.PublicIP, "n/a")))
	} else {
		lines = append(lines, fmt.Sprintf("- **Azure ASA** (`%s`) — configure `asa_nva` per region", DefaultASAName))
	}

	if cp, ok := pickRegion(ctx.GCPCheckpoint, CheckPointFirewall.hasData, "us-central1"); ok {
		lines = append(lines, fmt.Sprintf("- **GCP Check Point** (`%s`) — private `%s`",
			orDefault(cp.InstanceID, DefaultCheckPointName), orDefault(cp.PrivateIP, "pending")))
	} else {
		lines = append(lines, fmt.Sprintf("- **GCP Check Point** (`%s`) — set `checkpoint_firewall` in GCP region config", DefaultCheckPointName))
	}

	return strings.Join(lines, "\n")
}
