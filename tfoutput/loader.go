// Package tfoutput reads `terraform output -json` and offers default-safe
// accessors over the decoded tree.
package tfoutput

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultBinary is the bare terraform executable name resolved through PATH.
const DefaultBinary = "terraform"

// Result is the captured outcome of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes a command to completion. A non-zero exit status is reported
// through Result.ExitCode, not as an error; errors mean the command could not run.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Dir is the working directory of the command. terraform reads its state and
	// configuration from there. Empty means the current directory.
	Dir string
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = os.Environ()

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return res, err
	}
	return res, nil
}

// Loader tries each candidate terraform binary in order until one yields outputs.
type Loader struct {
	// Candidates are either paths to a vendored binary (skipped when missing on disk)
	// or bare executable names resolved through PATH.
	Candidates []string
	Runner     Runner
}

// NewLoader returns a Loader that tries <repoRoot>/bin/terraform, then terraform from PATH,
// running each inside repoRoot.
func NewLoader(repoRoot string) *Loader {
	return &Loader{
		Candidates: DefaultCandidates(repoRoot),
		Runner:     ExecRunner{Dir: repoRoot},
	}
}

// DefaultCandidates lists the binaries tried when none are configured.
func DefaultCandidates(repoRoot string) []string {
	return []string{filepath.Join(repoRoot, "bin", DefaultBinary), DefaultBinary}
}

// Load runs `<tool> output -json` against each candidate. It returns the first
// successfully decoded outputs, or nil and the last error seen. It never panics on
// a missing binary, a failing command or malformed output.
func (l *Loader) Load(ctx context.Context) (Outputs, error) {
	runner := l.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	var lastErr error
	for _, candidate := range l.Candidates {
		if isPathCandidate(candidate) {
			if _, err := os.Stat(candidate); err != nil {
				slog.Debug("Skipping missing terraform candidate", "path", candidate)
				continue
			}
		}

		res, err := runner.Run(ctx, candidate, "output", "-json")
		if err != nil {
			slog.Debug("Terraform candidate could not run", "candidate", candidate, "error", err)
			lastErr = err
			continue
		}

		if res.ExitCode != 0 {
			msg := strings.TrimSpace(string(res.Stderr))
			if msg == "" {
				msg = "terraform output failed"
			}
			lastErr = errors.New(msg)
			continue
		}

		var outputs Outputs
		if err := json.Unmarshal(res.Stdout, &outputs); err != nil {
			lastErr = fmt.Errorf("failed to decode terraform output: %w", err)
			continue
		}
		if outputs == nil {
			// `null` decodes without error; treat it as an empty output set.
			outputs = Outputs{}
		}
		return outputs, nil
	}
	return nil, lastErr
}

// isPathCandidate reports whether candidate names a file rather than a PATH lookup.
func isPathCandidate(candidate string) bool {
	return strings.ContainsRune(candidate, filepath.Separator) || strings.ContainsRune(candidate, '/')
}
