package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"demodoc/render"
	"demodoc/tfoutput"

	"github.com/charmbracelet/glamour"
)

// documentOutputs are the terraform outputs the document reads.
var documentOutputs = []string{"multi_cloud_load_balancing", "reachability"}

// generator runs load → render → write. It is reused by the state watcher; runs
// never overlap.
type generator struct {
	config Config
	loader *tfoutput.Loader
	opts   render.Options

	mu sync.Mutex
}

func newGenerator(cfg Config) *generator {
	loader := tfoutput.NewLoader(cfg.RepoRoot)
	loader.Candidates = cfg.Binaries
	return &generator{config: cfg, loader: loader}
}

// generate writes the document and returns its content.
func (g *generator) generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	outputs, loadErr := g.loader.Load(ctx)
	if loadErr != nil {
		slog.Warn("Terraform outputs unavailable", "error", loadErr)
	}

	content := render.Document(outputs, loadErr, g.opts)

	if err := writeFileAtomic(g.config.DocPath, []byte(content)); err != nil {
		return "", err
	}
	return content, nil
}

// writeFileAtomic replaces path through a rename so the preview server never
// reads a truncated document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// warnUndeclaredOutputs logs the outputs the document reads that the root module
// does not declare. Directories without .tf files are not terraform roots and are skipped.
func warnUndeclaredOutputs(repoRoot string) {
	declared, err := tfoutput.DeclaredOutputs(repoRoot)
	if err != nil {
		slog.Debug("Skipping declared output check", "error", err)
		return
	}
	if len(declared) == 0 {
		return
	}
	for _, name := range tfoutput.MissingOutputs(declared, documentOutputs...) {
		slog.Warn("Terraform configuration does not declare output used by the document", "output", name)
	}
}

// renderForTerminal styles markdown for the terminal, falling back to the raw text.
func renderForTerminal(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
