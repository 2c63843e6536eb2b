package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"demodoc/tfoutput"

	"gopkg.in/ini.v1"
)

const (
	// ConfigFileName is read from the repository root when present.
	ConfigFileName = ".demodoc.ini"

	defaultHost    = "127.0.0.1"
	defaultDocPath = "docs/demo-workflow.md"
	stateFileName  = "terraform.tfstate"
)

// Config holds the resolved settings for one run.
type Config struct {
	RepoRoot     string
	DocPath      string   // Absolute path of the generated document
	Binaries     []string // Terraform candidates, tried in order
	Host         string
	AllowOrigins []string
}

// loadConfig returns defaults for repoRoot overlaid with the optional config file:
//
//	[terraform]
//	binaries = bin/terraform, terraform
//	[document]
//	path = docs/demo-workflow.md
//	[server]
//	host = 127.0.0.1
//	allow_origins = http://localhost:5173
func loadConfig(repoRoot string) (Config, error) {
	root, err := filepath.Abs(repoRoot)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve repo root: %w", err)
	}

	cfg := Config{
		RepoRoot: root,
		DocPath:  filepath.Join(root, defaultDocPath),
		Binaries: tfoutput.DefaultCandidates(root),
		Host:     defaultHost,
	}

	path := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	if key := file.Section("terraform").Key("binaries"); key.String() != "" {
		cfg.Binaries = nil
		for _, bin := range key.Strings(",") {
			cfg.Binaries = append(cfg.Binaries, resolveCandidate(root, bin))
		}
	}
	if p := file.Section("document").Key("path").String(); p != "" {
		cfg.DocPath = resolvePath(root, p)
	}
	if h := file.Section("server").Key("host").String(); h != "" {
		cfg.Host = h
	}
	if key := file.Section("server").Key("allow_origins"); key.String() != "" {
		cfg.AllowOrigins = key.Strings(",")
	}

	return cfg, nil
}

// resolveCandidate anchors relative binary paths at the repo root. Bare names are
// left alone so they are looked up through PATH.
func resolveCandidate(root, bin string) string {
	if filepath.Base(bin) == bin {
		return bin
	}
	return resolvePath(root, bin)
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// displayPath shows p relative to the repo root when it lives inside it.
func (c Config) displayPath(p string) string {
	rel, err := filepath.Rel(c.RepoRoot, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
