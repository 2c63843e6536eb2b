package cmd

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTerraformScript installs script as <root>/bin/terraform.
func writeTerraformScript(t *testing.T, root, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake terraform is a shell script")
	}
	bin := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "terraform"), []byte(script), 0755))
}

// writeFakeTerraform installs a shell script answering `output -json` with body.
func writeFakeTerraform(t *testing.T, root, body string) {
	t.Helper()
	writeTerraformScript(t, root, "#!/bin/sh\ncat <<'JSON'\n"+body+"\nJSON\n")
}

// writeStateTerraform installs a terraform that, like the real one, reads
// terraform.tfstate from its working directory. The state file holds the outputs
// JSON directly; state names containing "slow" take longer to answer.
func writeStateTerraform(t *testing.T, root string) {
	t.Helper()
	writeTerraformScript(t, root, `#!/bin/sh
if [ ! -f terraform.tfstate ]; then
  echo "No outputs found" >&2
  exit 1
fi
state=$(cat terraform.tfstate)
case "$state" in
  *slow*) sleep 0.5 ;;
esac
printf '%s\n' "$state"
`)
}

func albOutputs(dnsName string) string {
	return `{"multi_cloud_load_balancing": {"value": {"application_albs": {"us-east-1": {"dns_name": "` + dnsName + `"}}}}}`
}

func writeState(t *testing.T, root, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, stateFileName), []byte(body), 0644))
}

func TestGenerator_WritesDocumentFromOutputs(t *testing.T) {
	root := t.TempDir()
	writeFakeTerraform(t, root, `{"multi_cloud_load_balancing": {"value": {"application_albs": {"us-east-1": {"dns_name": "alb-use1.example"}}}}}`)

	cfg, err := loadConfig(root)
	require.NoError(t, err)

	content, err := newGenerator(cfg).generate(context.Background())
	require.NoError(t, err)

	onDisk, err := os.ReadFile(cfg.DocPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(onDisk))
	assert.Contains(t, content, "> Terraform outputs available.")
	assert.Contains(t, content, "alb-use1.example → Web ASG → PostgreSQL")
}

func TestGenerator_RunsTerraformInRepoRoot(t *testing.T) {
	root := t.TempDir()
	writeStateTerraform(t, root)
	writeState(t, root, albOutputs("alb-root.example"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NotEqual(t, root, wd)

	cfg, err := loadConfig(root)
	require.NoError(t, err)

	content, err := newGenerator(cfg).generate(context.Background())
	require.NoError(t, err)

	assert.Contains(t, content, "> Terraform outputs available.")
	assert.Contains(t, content, "alb-root.example → Web ASG → PostgreSQL")
}

func TestGenerator_LastRunWins(t *testing.T) {
	root := t.TempDir()
	writeStateTerraform(t, root)
	writeState(t, root, albOutputs("alb-slow.example"))

	cfg, err := loadConfig(root)
	require.NoError(t, err)
	gen := newGenerator(cfg)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := gen.generate(context.Background())
		assert.NoError(t, err)
	}()

	// The slow run has read the old state by now; a newer apply lands meanwhile
	time.Sleep(150 * time.Millisecond)
	writeState(t, root, albOutputs("alb-new.example"))

	_, err = gen.generate(context.Background())
	require.NoError(t, err)
	wg.Wait()

	onDisk, err := os.ReadFile(cfg.DocPath)
	require.NoError(t, err)
	assert.Contains(t, string(onDisk), "alb-new.example → Web ASG → PostgreSQL")
	assert.NotContains(t, string(onDisk), "alb-slow.example")
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs", "demo-workflow.md")

	require.NoError(t, writeFileAtomic(path, []byte("first\n")))
	require.NoError(t, writeFileAtomic(path, []byte("second\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestGenerator_ToolUnavailable(t *testing.T) {
	root := t.TempDir()

	cfg, err := loadConfig(root)
	require.NoError(t, err)
	cfg.Binaries = []string{filepath.Join(root, "bin", "terraform"), filepath.Join(root, "missing", "terraform")}

	content, err := newGenerator(cfg).generate(context.Background())
	require.NoError(t, err)

	assert.Contains(t, content, "> Terraform outputs unavailable (run `terraform apply` to populate dynamic values).")
	assert.Contains(t, content, "ALB us-east-1 (pending)")
}

func TestRun_NoServe(t *testing.T) {
	root := t.TempDir()
	writeFakeTerraform(t, root, `{}`)

	noServe = true
	defer func() { noServe = false }()

	cfg, err := loadConfig(root)
	require.NoError(t, err)

	require.NoError(t, run(context.Background(), cfg))
	assert.FileExists(t, filepath.Join(root, "docs", "demo-workflow.md"))
}

func TestRun_WatchRegeneratesOnStateWrite(t *testing.T) {
	root := t.TempDir()
	writeStateTerraform(t, root)

	watchState = true
	defer func() { watchState = false }()

	cfg, err := loadConfig(root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx, cfg) }()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(cfg.DocPath)
		return err == nil && strings.Contains(string(data), "> Terraform outputs unavailable")
	}, 10*time.Second, 20*time.Millisecond)

	// Rewrite the state each tick until the watcher is up and has regenerated
	statePath := filepath.Join(root, stateFileName)
	assert.Eventually(t, func() bool {
		if err := os.WriteFile(statePath, []byte(albOutputs("alb-watch.example")), 0644); err != nil {
			return false
		}
		data, err := os.ReadFile(cfg.DocPath)
		return err == nil && strings.Contains(string(data), "alb-watch.example → Web ASG → PostgreSQL")
	}, 10*time.Second, 500*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not stop after cancellation")
	}
}

func TestRenderForTerminal(t *testing.T) {
	out := renderForTerminal("# Heading\n\nSome text.\n")
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "Some text.")
}

func TestWarnUndeclaredOutputs_ToleratesMissingConfiguration(t *testing.T) {
	assert.NotPanics(t, func() { warnUndeclaredOutputs(filepath.Join(t.TempDir(), "nope")) })
}
