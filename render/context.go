// Package render turns terraform outputs into the Skyforge demo workflow document.
package render

import (
	"demodoc/tfoutput"
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Credentials is an appliance admin login. Either side may be empty.
type Credentials struct {
	Username string
	Password string
}

// ALB is a regional application load balancer endpoint.
type ALB struct {
	DNSName string
	ZoneID  string
}

// FortinetConnector is the FortiGate attached through a Transit Gateway Connect in one region.
type FortinetConnector struct {
	InstanceID           string
	ManagementIP         string
	PrivateIP            string
	Credentials          *Credentials
	InspectionRouteTable string
	ApplianceRouteTable  string
}

// PaloAltoGWLB is the Palo Alto firewall pair behind a Gateway Load Balancer in one region.
type PaloAltoGWLB struct {
	PrivateIPs  []string
	Credentials *Credentials
}

// ASAAppliance is an Azure ASA network virtual appliance.
type ASAAppliance struct {
	VMID        string
	PrivateIP   string
	PublicIP    string
	Credentials Credentials
}

// CheckPointFirewall is a GCP Check Point firewall instance.
type CheckPointFirewall struct {
	InstanceID  string
	PrivateIP   string
	Credentials Credentials
}

// Context is the flat, default-safe view of terraform outputs consumed by the renderers.
// The zero value is a valid context describing an environment with no outputs.
type Context struct {
	// AcceleratorDNS is the name clients should use: the custom domain when set,
	// else the accelerator's own DNS name (AcceleratorEndpoint).
	AcceleratorDNS      string
	AcceleratorAlias    string
	AcceleratorEndpoint string
	AcceleratorPorts    []string

	ApplicationALBs map[string]ALB

	TGWConnect    map[string]FortinetConnector
	GWLB          map[string]PaloAltoGWLB
	AzureASA      map[string]ASAAppliance
	GCPCheckpoint map[string]CheckPointFirewall

	// Reachability is kept as a tree: cloud → kind → region → test name → details.
	Reachability map[string]any
}

// ---------------------------------------------------------------------------
// Builder
// ---------------------------------------------------------------------------

// BuildContext extracts the fields the document needs. It never fails: missing or
// wrongly shaped values fall back to empty defaults.
func BuildContext(outputs tfoutput.Outputs) Context {
	multiLB := tfoutput.AsMap(outputs.Unwrap("multi_cloud_load_balancing", nil))
	awsBlock := tfoutput.MapAt(multiLB, "aws")
	azureBlock := tfoutput.MapAt(multiLB, "azure")
	gcpBlock := tfoutput.MapAt(multiLB, "gcp")

	ctx := Context{
		ApplicationALBs: map[string]ALB{},
		TGWConnect:      map[string]FortinetConnector{},
		GWLB:            map[string]PaloAltoGWLB{},
		AzureASA:        map[string]ASAAppliance{},
		GCPCheckpoint:   map[string]CheckPointFirewall{},
		Reachability:    tfoutput.AsMap(outputs.Unwrap("reachability", nil)),
	}

	accelerator := tfoutput.MapAt(awsBlock, "global_application_accelerator")
	ctx.AcceleratorAlias = tfoutput.StringAt(accelerator, "custom_domain")
	ctx.AcceleratorEndpoint = tfoutput.StringAt(accelerator, "dns_name")
	ctx.AcceleratorDNS = tfoutput.FirstNonEmpty(ctx.AcceleratorAlias, ctx.AcceleratorEndpoint)
	ctx.AcceleratorPorts = tfoutput.Strings(tfoutput.Lookup(accelerator, "listener_ports"))

	for region, v := range tfoutput.MapAt(multiLB, "application_albs") {
		info := tfoutput.AsMap(v)
		if info == nil {
			continue
		}
		ctx.ApplicationALBs[region] = ALB{
			DNSName: tfoutput.StringAt(info, "dns_name"),
			ZoneID:  tfoutput.StringAt(info, "zone_id"),
		}
	}

	for region, v := range tfoutput.MapAt(awsBlock, "transit_gateway_connect") {
		entry := tfoutput.AsMap(v)
		connector := tfoutput.MapAt(entry, "connector")
		ctx.TGWConnect[region] = FortinetConnector{
			InstanceID:           tfoutput.StringAt(connector, "instance_id"),
			ManagementIP:         tfoutput.StringAt(connector, "management_ip"),
			PrivateIP:            tfoutput.StringAt(connector, "private_ip"),
			Credentials:          credentialsFrom(tfoutput.Lookup(connector, "admin_credentials")),
			InspectionRouteTable: tfoutput.StringAt(entry, "inspection_route_table_id"),
			ApplianceRouteTable:  tfoutput.StringAt(entry, "appliance_route_table_id"),
		}
	}

	for region, v := range tfoutput.MapAt(awsBlock, "gateway_load_balancers") {
		firewalls := tfoutput.MapAt(v, "firewalls")
		ctx.GWLB[region] = PaloAltoGWLB{
			PrivateIPs:  tfoutput.Strings(tfoutput.Lookup(firewalls, "private_ips")),
			Credentials: credentialsFrom(tfoutput.Lookup(firewalls, "admin_credentials")),
		}
	}

	for region, v := range tfoutput.MapAt(azureBlock, "asa") {
		info := tfoutput.AsMap(v)
		if len(info) == 0 {
			continue
		}
		ctx.AzureASA[region] = ASAAppliance{
			VMID:      tfoutput.StringAt(info, "vm_id"),
			PrivateIP: tfoutput.StringAt(info, "private_ip"),
			PublicIP:  tfoutput.StringAt(info, "public_ip"),
			Credentials: Credentials{
				Username: tfoutput.StringAt(info, "admin_username"),
				Password: tfoutput.StringAt(info, "admin_password"),
			},
		}
	}

	for region, v := range tfoutput.MapAt(gcpBlock, "checkpoint_firewalls") {
		info := tfoutput.AsMap(v)
		if len(info) == 0 {
			continue
		}
		ctx.GCPCheckpoint[region] = CheckPointFirewall{
			InstanceID: tfoutput.StringAt(info, "instance_id"),
			PrivateIP:  tfoutput.StringAt(info, "private_ip"),
			Credentials: Credentials{
				Username: tfoutput.StringAt(info, "admin_username"),
				Password: tfoutput.StringAt(info, "admin_password"),
			},
		}
	}

	return ctx
}

// credentialsFrom returns nil unless v is an object.
func credentialsFrom(v any) *Credentials {
	m := tfoutput.AsMap(v)
	if m == nil {
		return nil
	}
	return &Credentials{
		Username: tfoutput.StringAt(m, "username"),
		Password: tfoutput.StringAt(m, "password"),
	}
}

// String renders the pair as "user X / pass Y", using n/a for missing sides.
func (c *Credentials) String() string {
	if c == nil {
		return "user n/a / pass n/a"
	}
	return "user " + orDefault(c.Username, "n/a") + " / pass " + orDefault(c.Password, "n/a")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
