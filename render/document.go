package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"demodoc/tfoutput"
)

//go:embed templates/demo-workflow.md.tmpl
var workflowTemplate string

var docTemplate = template.Must(template.New("demo-workflow.md").Parse(workflowTemplate))

// DefaultCommand is the command line the document tells readers to rerun.
const DefaultCommand = "demodoc"

// Options tunes document rendering.
type Options struct {
	// Now supplies the generation timestamp. Defaults to time.Now.
	Now func() time.Time
	// Command is quoted in the header and validation checklist. Defaults to DefaultCommand.
	Command string
}

// documentData feeds the workflow template.
type documentData struct {
	Command             string
	Timestamp           string
	Status              string
	AcceleratorLabel    string
	PortsNote           string
	PathTable           string
	SecuritySection     string
	ApplianceInventory  string
	ReachabilitySection string
}

// Document renders the complete demo workflow. loadErr is the Output Loader's
// diagnostic, if any; it is shown verbatim in the status line.
func Document(outputs tfoutput.Outputs, loadErr error, opts Options) string {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	command := orDefault(opts.Command, DefaultCommand)

	ctx := BuildContext(outputs)
	data := documentData{
		Command:             command,
		Timestamp:           now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Status:              StatusLine(outputs, loadErr),
		AcceleratorLabel:    acceleratorLabel(ctx),
		PortsNote:           portsNote(ctx),
		PathTable:           PathTable(ctx),
		SecuritySection:     SecuritySection(ctx),
		ApplianceInventory:  ApplianceInventory(ctx),
		ReachabilitySection: ReachabilitySection(ctx),
	}

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, data); err != nil {
		// The template only reads string fields, so this is a programming error.
		panic(fmt.Sprintf("rendering demo workflow: %v", err))
	}
	return buf.String()
}

// StatusLine describes whether terraform outputs fed this document.
func StatusLine(outputs tfoutput.Outputs, loadErr error) string {
	if loadErr != nil {
		return "Terraform outputs unavailable: " + strings.TrimSpace(loadErr.Error())
	}
	if len(outputs) == 0 {
		return "Terraform outputs unavailable (run `terraform apply` to populate dynamic values)."
	}
	return "Terraform outputs available."
}

func acceleratorLabel(ctx Context) string {
	switch {
	case ctx.AcceleratorAlias != "" && ctx.AcceleratorEndpoint != "":
		return fmt.Sprintf("`%s` (alias for `%s`)", ctx.AcceleratorAlias, ctx.AcceleratorEndpoint)
	case ctx.AcceleratorDNS != "":
		return fmt.Sprintf("`%s`", ctx.AcceleratorDNS)
	default:
		return "the accelerator DNS name"
	}
}

func portsNote(ctx Context) string {
	if len(ctx.AcceleratorPorts) == 0 {
		return ""
	}
	return " on listener ports " + strings.Join(ctx.AcceleratorPorts, ", ")
}
