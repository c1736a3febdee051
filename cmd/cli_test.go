package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceID = "6f1c1d0e-8a59-4d2b-9b7e-2a4a1f3b7c10"
	bobID   = "0d9a8e5c-3f6b-4e3a-8c21-7b5e9f2d4a61"
	carolID = "a3c4e5f6-1b2d-4c8e-9f0a-5d6e7f8a9b0c"
	daveID  = "f0e1d2c3-b4a5-4968-8776-5544332211ff"
)

func TestPreviewListsClaimsWithoutRemoving(t *testing.T) {
	home := t.TempDir()
	claimsPath, err := writeClaimsFixture(home)
	require.NoError(t, err)
	before, err := os.ReadFile(claimsPath)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "preview")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Preview: nothing was removed")
	assert.Contains(t, stdout, "would remove: 3 claim(s)")
	assert.Contains(t, stdout, "world (3)")
	assert.Contains(t, stdout, "PS_alice_farm")
	assert.Contains(t, stdout, "Affected owners: alice")
	assert.NotContains(t, stdout, "spawn")
	assert.NotContains(t, stdout, "ps_alice_nether")

	after, err := os.ReadFile(claimsPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestRunRemovesClaimsOfInactiveOwners(t *testing.T) {
	home := t.TempDir()
	claimsPath, err := writeClaimsFixture(home)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Check completed!")
	assert.Contains(t, stdout, "removed: 3 claim(s)")
	assert.Contains(t, stdout, "affected owners: 1")

	data, err := os.ReadFile(claimsPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ps_alice_home")
	assert.NotContains(t, string(data), "ps_shared")
	assert.Contains(t, string(data), "ps_bob")
	assert.Contains(t, string(data), "spawn")
	assert.Contains(t, string(data), "ps_alice_nether")

	stdout, _, err = executeCLI(t, home, "preview")
	require.NoError(t, err)
	assert.Contains(t, stdout, "would remove: 0 claim(s)")
	assert.Contains(t, stdout, "No claims held by inactive owners.")
}

func TestRunDryRunJSONOutput(t *testing.T) {
	home := t.TempDir()
	_, err := writeClaimsFixture(home)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "run", "--dry-run", "--output", "json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var summary domain.PruneSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, "preview", summary.Mode)
	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, []string{"alice"}, summary.AffectedOwners)
	assert.Equal(t, map[string]int{"world": 3}, summary.CountsByNamespace)
}

func TestStartAliasWithYAMLOutput(t *testing.T) {
	home := t.TempDir()
	_, err := writeClaimsFixture(home)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "start", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "mode: commit")
	assert.Contains(t, stdout, "total_count: 3")
}

func TestRunRejectsUnknownOutputFormat(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "run", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestRunWithDedupeStillRemovesEveryClaim(t *testing.T) {
	home := t.TempDir()
	_, err := writeClaimsFixture(home)
	require.NoError(t, err)
	require.NoError(t, writeConfig(home, "prune:", "  dedupe-claims: true"))

	stdout, _, err := executeCLI(t, home, "preview")
	require.NoError(t, err)
	assert.Contains(t, stdout, "would remove: 3 claim(s)")
}

func TestConfigCommandReportsFallbacks(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfig(home,
		"inactive-time:",
		"  value: 0",
		"auto-run:",
		"  enabled: true",
		"  interval-minutes: 0",
	))

	stdout, stderr, err := executeCLI(t, home, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "inactive-time: 90 days")
	assert.Contains(t, stdout, "auto-run-enabled: true")
	assert.Contains(t, stdout, "auto-run-interval: 1h0m0s")
	assert.Contains(t, stdout, "store-driver: toml")
	assert.Contains(t, stdout, "Using default: 90 days.")
	assert.Contains(t, stderr, "auto-run.interval-minutes must be between 1 and")
}

func TestConfigFlagMissingFileFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "config", "--config", filepath.Join(home, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestImportSeedsSQLiteStore(t *testing.T) {
	home := t.TempDir()
	claimsPath, err := writeClaimsFixture(home)
	require.NoError(t, err)
	dbPath := filepath.Join(home, "claims.db")

	stdout, _, err := executeCLI(t, home, "import", "--from", claimsPath, "--to", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 4 owner(s), 2 world(s), 6 claim(s)")

	configPath := filepath.Join(home, "sqlite.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf(
		"store:\n  driver: sqlite\n  path: %s\n", dbPath,
	)), 0o600))

	stdout, _, err = executeCLI(t, home, "--config", configPath, "run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "removed: 3 claim(s)")

	stdout, _, err = executeCLI(t, home, "--config", configPath, "preview", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"total_count\": 0")
}

func TestImportRequiresSQLiteTarget(t *testing.T) {
	home := t.TempDir()
	claimsPath, err := writeClaimsFixture(home)
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "import", "--from", claimsPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass --to")
}

func TestImportMissingSourceFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "import", "--from", filepath.Join(home, "nope.toml"), "--to", filepath.Join(home, "claims.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open toml snapshot")
}

func TestServeStopsWhenContextEnds(t *testing.T) {
	home := t.TempDir()
	_, err := writeClaimsFixture(home)
	require.NoError(t, err)
	require.NoError(t, writeConfig(home,
		"auto-run:",
		"  enabled: true",
		"  interval-minutes: 5",
		"log:",
		"  format: json",
	))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, stderr, err := executeCLIContext(t, ctx, home, "serve")
	require.NoError(t, err)
	assert.Contains(t, stderr, "auto-run started")
	assert.Contains(t, stderr, "auto-run stopped")
}

func TestServeWithAutoRunDisabledWaits(t *testing.T) {
	home := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, stderr, err := executeCLIContext(t, ctx, home, "serve")
	require.NoError(t, err)
	assert.Contains(t, stderr, "auto-run disabled")
}

func TestServeReloadTogglesAutoRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AUTOUNCLAIM_LOG_LEVEL", "")
	require.NoError(t, writeConfig(home, "log:", "  format: json"))

	logs, reload, done, cancel := startServe(t)
	defer cancel()

	waitForLog(t, logs, "auto-run disabled", 1)

	require.NoError(t, writeConfig(home,
		"auto-run:",
		"  enabled: true",
		"  interval-minutes: 5",
		"log:",
		"  format: json",
	))
	reload <- syscall.SIGHUP
	waitForLog(t, logs, "auto-run started", 1)
	waitForLog(t, logs, "configuration reloaded", 1)

	require.NoError(t, writeConfig(home, "log:", "  format: json"))
	reload <- syscall.SIGHUP
	waitForLog(t, logs, "auto-run stopped", 1)
	waitForLog(t, logs, "auto-run disabled", 2)

	cancel()
	require.NoError(t, waitForServe(t, done))
	assert.Equal(t, 1, strings.Count(logs.String(), "auto-run started"))
}

func TestServeKeepsRunningWhenReloadFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AUTOUNCLAIM_LOG_LEVEL", "")
	require.NoError(t, writeConfig(home,
		"auto-run:",
		"  enabled: true",
		"  interval-minutes: 5",
		"log:",
		"  format: json",
	))

	logs, reload, done, cancel := startServe(t)
	defer cancel()

	waitForLog(t, logs, "auto-run started", 1)

	require.NoError(t, writeConfig(home, "auto-run: [unterminated"))
	reload <- syscall.SIGHUP
	waitForLog(t, logs, "configuration reload failed, keeping previous settings", 1)

	select {
	case err := <-done:
		t.Fatalf("serve exited after a failed reload: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Zero(t, strings.Count(logs.String(), "auto-run stopped"))

	cancel()
	require.NoError(t, waitForServe(t, done))
	assert.Equal(t, 1, strings.Count(logs.String(), "auto-run started"))
	assert.Equal(t, 1, strings.Count(logs.String(), "auto-run stopped"))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownCommandFails(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "unclaim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"unclaim\"")
}

func TestPruneSpinnerRendersLabelAndReturnsResult(t *testing.T) {
	var out bytes.Buffer
	want := domain.EmptyPruneResult(domain.ModePreview)

	got, err := runPruneSpinner(context.Background(), &out, "Checking for inactive owners...", func(context.Context) (domain.PruneResult, error) {
		time.Sleep(200 * time.Millisecond)
		return want, nil
	})
	require.NoError(t, err)
	assert.Equal(t, want.Mode(), got.Mode())
	assert.Contains(t, out.String(), "Checking for inactive owners")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIContext(t, context.Background(), home, args...)
}

func executeCLIContext(t *testing.T, ctx context.Context, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("AUTOUNCLAIM_LOG_LEVEL", "")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// syncBuffer is a bytes.Buffer safe for the serve loop to write while a
// test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startServe(t *testing.T) (*syncBuffer, chan os.Signal, <-chan error, context.CancelFunc) {
	t.Helper()

	logs := &syncBuffer{}
	cmd := &cobra.Command{}
	cmd.SetErr(logs)

	ctx, cancel := context.WithCancel(context.Background())
	reload := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, cmd, &rootOptions{}, domain.ModePreview, reload)
	}()

	return logs, reload, done, cancel
}

func waitForLog(t *testing.T, logs *syncBuffer, message string, count int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return strings.Count(logs.String(), message) >= count
	}, 2*time.Second, 10*time.Millisecond, "waiting for %q in logs:\n%s", message, logs)
}

func waitForServe(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for serve to stop")
		return nil
	}
}

func writeConfig(home string, lines ...string) error {
	configDir := filepath.Join(home, ".autounclaim")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(filepath.Join(configDir, "config.yaml"), buf.Bytes(), 0o644)
}

func writeClaimsFixture(home string) (string, error) {
	configDir := filepath.Join(home, ".autounclaim")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	claims := fmt.Sprintf(`version = 1

[[owners]]
id = %[1]q
name = "alice"
online = false
last_seen = %[5]q

[[owners]]
id = %[2]q
name = "bob"
online = true
last_seen = %[5]q

[[owners]]
id = %[3]q
name = "carol"
online = false
last_seen = %[6]q

[[owners]]
id = %[4]q
name = "dave"
online = false

[[worlds]]
name = "world"
loaded = true

[[worlds.claims]]
id = "ps_alice_home"
owners = [%[1]q]

[[worlds.claims]]
id = "PS_alice_farm"
owners = [%[1]q]

[[worlds.claims]]
id = "spawn"
owners = [%[1]q]

[[worlds.claims]]
id = "ps_bob"
owners = [%[2]q]

[[worlds.claims]]
id = "ps_shared"
owners = [%[1]q, %[2]q, %[4]q]

[[worlds]]
name = "nether"
loaded = false

[[worlds.claims]]
id = "ps_alice_nether"
owners = [%[1]q]
`,
		aliceID, bobID, carolID, daveID,
		now.Add(-200*24*time.Hour).Format(time.RFC3339),
		now.Add(-10*24*time.Hour).Format(time.RFC3339),
	)

	path := filepath.Join(configDir, "claims.toml")
	return path, os.WriteFile(path, []byte(claims), 0o644)
}
