package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecuritySection_Unavailable(t *testing.T) {
	assert.Equal(t, "Security appliance outputs unavailable.", SecuritySection(BuildContext(nil)))
}

func TestSecuritySection_Full(t *testing.T) {
	expected := "#### AWS Transit Gateway Connect (Fortinet)\n" +
		"- **us-east-1** — mgmt IP `10.10.0.10` (inspection RT `tgw-rtb-inspect`, appliance RT `tgw-rtb-appliance`) (user admin / pass Forti!23)\n" +
		"\n" +
		"#### AWS GWLB Palo Alto\n" +
		"- **ap-northeast-1** — firewalls `10.30.1.10, 10.30.2.10` (user paadmin / pass n/a)\n" +
		"\n" +
		"#### Azure ASA NVAs\n" +
		"- **uswest2** — private `10.50.0.4` / public `20.1.2.3` (user asaadmin / pass Asa!pass)\n" +
		"\n" +
		"#### GCP Check Point Firewalls\n" +
		"- **us-central1** — private `10.60.0.5` (user cpadmin / pass n/a)"

	assert.Equal(t, expected, SecuritySection(BuildContext(loadOutputs(t, fullOutputsJSON))))
}

func TestSecuritySection_FallbacksAndOrdering(t *testing.T) {
	ctx := Context{
		TGWConnect: map[string]FortinetConnector{
			"us-west-2": {},
			"eu-west-1": {PrivateIP: "10.1.0.5"},
		},
		GWLB: map[string]PaloAltoGWLB{"us-east-1": {}},
		AzureASA: map[string]ASAAppliance{
			"westeurope": {VMID: "vm-1"},
		},
	}

	expected := "#### AWS Transit Gateway Connect (Fortinet)\n" +
		"- **eu-west-1** — mgmt IP `10.1.0.5` (user n/a / pass n/a)\n" +
		"- **us-west-2** — mgmt IP `pending` (user n/a / pass n/a)\n" +
		"\n" +
		"#### AWS GWLB Palo Alto\n" +
		"- **us-east-1** — firewalls `pending` (user n/a / pass n/a)\n" +
		"\n" +
		"#### Azure ASA NVAs\n" +
		"- **westeurope** — private `pending` / public `n/a` (user n/a / pass n/a)"

	assert.Equal(t, expected, SecuritySection(ctx))
}
