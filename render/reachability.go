package render

import (
	"fmt"
	"strings"

	"demodoc/tfoutput"
)

const reachabilityUnavailable = "Reachability outputs unavailable."

// ReachabilitySection summarises the reachability tests terraform created per cloud.
func ReachabilitySection(ctx Context) string {
	var groups []string

	aws := tfoutput.MapAt(ctx.Reachability, "aws")
	paths := tfoutput.MapAt(aws, "paths")
	analyses := tfoutput.MapAt(aws, "analyses")
	if len(paths) > 0 || len(analyses) > 0 {
		lines := []string{"#### AWS Reachability Analyzer"}
		lines = append(lines, regionLines(paths, "- **%s** paths: %s")...)
		lines = append(lines, regionLines(analyses, "  - Analyses: %[2]s")...)
		groups = append(groups, strings.Join(lines, "\n"))
	}

	if azure := tfoutput.MapAt(ctx.Reachability, "azure"); len(azure) > 0 {
		lines := []string{"#### Azure Network Watcher"}
		lines = append(lines, regionLines(azure, "- **%s** monitors: %s")...)
		groups = append(groups, strings.Join(lines, "\n"))
	}

	if gcp := tfoutput.MapAt(ctx.Reachability, "gcp"); len(gcp) > 0 {
		lines := []string{"#### GCP Connectivity Tests"}
		lines = append(lines, regionLines(gcp, "- **%s** tests: %s")...)
		groups = append(groups, strings.Join(lines, "\n"))
	}

	if len(groups) == 0 {
		return reachabilityUnavailable
	}
	return strings.Join(groups, "\n\n")
}

// regionLines formats one line per region with the sorted test names found there.
// format receives the region and the comma-joined names.
func regionLines(byRegion map[string]any, format string) []string {
	lines := make([]string, 0, len(byRegion))
	for _, region := range tfoutput.SortedKeys(byRegion) {
		lines = append(lines, fmt.Sprintf(format, region, testNames(byRegion[region])))
	}
	return lines
}

func testNames(v any) string {
	tests, ok := v.(map[string]any)
	if !ok {
		return "--"
	}
	return strings.Join(tfoutput.SortedKeys(tests), ", ")
}
