package render

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed flows.yaml
var flowsYAML []byte

// Flow is one row of the Forward Path Search catalog.
type Flow struct {
	Name        string `yaml:"name"`
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	Protocol    string `yaml:"protocol"`
	Focus       string `yaml:"focus"`
	// ALBRegion marks global ingress flows. Their source is the accelerator and their
	// destination starts at the regional ALB.
	ALBRegion string `yaml:"alb_region,omitempty"`
}

var flows = mustLoadFlows(flowsYAML)

func mustLoadFlows(data []byte) []Flow {
	var out []Flow
	if err := yaml.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("invalid embedded flow catalog: %v", err))
	}
	return out
}

// Flows returns a copy of the fixed path catalog.
func Flows() []Flow {
	return append([]Flow(nil), flows...)
}

// albDNS returns the ALB DNS name for region, or a pending placeholder.
func (c Context) albDNS(region string) string {
	if alb, ok := c.ApplicationALBs[region]; ok && alb.DNSName != "" {
		return alb.DNSName
	}
	return fmt.Sprintf("ALB %s (pending)", region)
}

// resolve substitutes context values into a catalog flow.
func (f Flow) resolve(ctx Context) (source, destination string) {
	if f.ALBRegion == "" {
		return f.Source, f.Destination
	}
	source = orDefault(ctx.AcceleratorDNS, "Internet client")
	return source, ctx.albDNS(f.ALBRegion) + " → " + f.Destination
}

// PathTable renders the path catalog as a Markdown table.
func PathTable(ctx Context) string {
	rows := []string{
		"| Flow | Source → Destination | Protocols / Ports | Forward Path Search Focus |",
		"|------|---------------------|--------------------|------------------------------|",
	}
	for _, f := range flows {
		source, destination := f.resolve(ctx)
		rows = append(rows, fmt.Sprintf("| %s | %s → %s | %s | %s |", f.Name, source, destination, f.Protocol, f.Focus))
	}
	return strings.Join(rows, "\n")
}
