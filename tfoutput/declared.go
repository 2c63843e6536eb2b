package tfoutput

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// DeclaredOutput is an `output` block found in a root module.
type DeclaredOutput struct {
	Name        string
	Description string
	Sensitive   bool
	SourceFile  string
}

// DeclaredOutputs parses every .tf file directly under moduleDir and returns the
// output blocks it declares, sorted by name. Files that fail to parse are logged and skipped.
func DeclaredOutputs(moduleDir string) ([]DeclaredOutput, error) {
	entries, err := os.ReadDir(moduleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read module directory: %w", err)
	}

	var outputs []DeclaredOutput
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tf" {
			continue
		}
		fileOutputs, err := parseOutputBlocks(filepath.Join(moduleDir, entry.Name()), entry.Name())
		if err != nil {
			slog.Warn("Failed to parse .tf file", "file", entry.Name(), "error", err)
			continue
		}
		outputs = append(outputs, fileOutputs...)
	}

	sort.Slice(outputs, func(i, j int) bool { return outputs[i].Name < outputs[j].Name })
	return outputs, nil
}

// MissingOutputs returns the names in want that are not declared.
func MissingOutputs(declared []DeclaredOutput, want ...string) []string {
	seen := make(map[string]bool, len(declared))
	for _, d := range declared {
		seen[d.Name] = true
	}
	var missing []string
	for _, name := range want {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func parseOutputBlocks(filePath, fileName string) ([]DeclaredOutput, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	file, diags := hclsyntax.ParseConfig(src, fileName, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL in %s: %s", fileName, diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected body type in %s", fileName)
	}

	var outputs []DeclaredOutput
	for _, block := range body.Blocks {
		if block.Type != "output" || len(block.Labels) == 0 {
			continue
		}
		out := DeclaredOutput{Name: block.Labels[0], SourceFile: fileName}

		if attr, exists := block.Body.Attributes["description"]; exists {
			val, diags := attr.Expr.Value(nil)
			if !diags.HasErrors() && val.Type() == cty.String && val.IsKnown() && !val.IsNull() {
				out.Description = val.AsString()
			}
		}
		if attr, exists := block.Body.Attributes["sensitive"]; exists {
			val, diags := attr.Expr.Value(nil)
			if !diags.HasErrors() && val.Type() == cty.Bool && val.IsKnown() && !val.IsNull() {
				out.Sensitive = val.True()
			}
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}
