package render

import (
	"encoding/json"
	"testing"

	"demodoc/tfoutput"

	"github.com/stretchr/testify/require"
)

// fullOutputsJSON mirrors `terraform output -json` for a fully applied demo.
const fullOutputsJSON = `{
  "multi_cloud_load_balancing": {
    "sensitive": false,
    "type": ["object", {}],
    "value": {
      "application_albs": {
        "us-east-1": {"dns_name": "alb-use1.elb.amazonaws.com", "zone_id": "Z35SXDOTRQ7X7K"},
        "eu-central-1": {"dns_name": "alb-euc1.elb.amazonaws.com", "zone_id": "Z215JYRZR1TBD5"}
      },
      "aws": {
        "global_application_accelerator": {
          "dns_name": "a1234.awsglobalaccelerator.com",
          "custom_domain": "app.skyforge.example",
          "listener_ports": [80, 443]
        },
        "transit_gateway_connect": {
          "us-east-1": {
            "connector": {
              "instance_id": "i-0fortinet",
              "management_ip": "10.10.0.10",
              "admin_credentials": {"username": "admin", "password": "Forti!23"}
            },
            "inspection_route_table_id": "tgw-rtb-inspect",
            "appliance_route_table_id": "tgw-rtb-appliance"
          }
        },
        "gateway_load_balancers": {
          "ap-northeast-1": {
            "firewalls": {
              "private_ips": ["10.30.1.10", "10.30.2.10"],
              "admin_credentials": {"username": "paadmin"}
            }
          }
        }
      },
      "azure": {
        "asa": {
          "uswest2": {
            "vm_id": "/subscriptions/x/vm-asa",
            "private_ip": "10.50.0.4",
            "public_ip": "20.1.2.3",
            "admin_username": "asaadmin",
            "admin_password": "Asa!pass"
          },
          "eastus": null
        }
      },
      "gcp": {
        "checkpoint_firewalls": {
          "us-central1": {
            "instance_id": "cp-123",
            "private_ip": "10.60.0.5",
            "admin_username": "cpadmin"
          }
        }
      }
    }
  },
  "reachability": {
    "value": {
      "aws": {
        "paths": {"us-east-1": {"p2": {}, "p1": {}}},
        "analyses": {"us-east-1": {"a1": {}}}
      },
      "azure": {"uswest2": {"monitor-web": {}}},
      "gcp": {"us-central1": {"test-run": {}, "test-lb": {}}}
    }
  }
}`

func loadOutputs(t *testing.T, raw string) tfoutput.Outputs {
	t.Helper()
	var outputs tfoutput.Outputs
	require.NoError(t, json.Unmarshal([]byte(raw), &outputs))
	return outputs
}
