package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksparrot/jsp/internal/config"
	"github.com/jacksparrot/jsp/internal/registry"
	"github.com/jacksparrot/jsp/internal/syncer"
	"github.com/jacksparrot/jsp/internal/testutil"
	"github.com/jacksparrot/jsp/internal/ui"
)

// project is a temporary project with a config pointing at a local manifest file.
type project struct {
	root     string
	manifest string
	packages string
}

func newProject(t *testing.T) *project {
	t.Helper()
	dir := t.TempDir()
	p := &project{
		root:     dir,
		manifest: filepath.Join(dir, "manifest.txt"),
		packages: filepath.Join(dir, "Packages", "jsp"),
	}
	cfg := fmt.Sprintf(`[manifest]
url = %q

[packages]
dir = "Packages/jsp"

[cache]
dir = ""

[log]
level = "error"
`, p.manifest)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".jsp"), 0o755))
	require.NoError(t, os.WriteFile(config.DefaultConfigPath(dir), []byte(cfg), 0o644))

	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })
	return p
}

func (p *project) writeManifest(t *testing.T, raw string) {
	t.Helper()
	require.NoError(t, os.WriteFile(p.manifest, []byte(raw), 0o644))
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(append([]string{"jsp"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestCommandsRequireConfig(t *testing.T) {
	dir := t.TempDir()
	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })
	t.Setenv(config.EnvManifestURL, "")

	_, _, err := run(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jsp init")
}

func TestEnvManifestWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })

	manifest := filepath.Join(dir, "manifest.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("A,u,r"), 0o644))
	t.Setenv(config.EnvManifestURL, manifest)

	stdout, _, err := run(t, "list", "--no-cache", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "A")
	assert.Contains(t, stdout, "not installed")
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })

	stdout, _, err := run(t, "init")
	require.NoError(t, err)
	path := config.DefaultConfigPath(dir)
	assert.Contains(t, stdout, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigTOML, string(data))

	_, _, err = run(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, _, err = run(t, "init", "--force", "--quiet")
	require.NoError(t, err)
}

func TestListShowsStatuses(t *testing.T) {
	p := newProject(t)
	p.writeManifest(t, "com.jsp.audio,https://example.test/audio.git,abc;com.jsp.ui,https://example.test/ui.git,def;")

	stdout, _, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "com.jsp.audio")
	assert.Contains(t, stdout, "com.jsp.ui")
	assert.Contains(t, stdout, "not installed")
	assert.Contains(t, stdout, "2 packages: 0 up to date, 0 outdated, 2 not installed")
}

func TestListEmptyAndMalformedManifest(t *testing.T) {
	p := newProject(t)
	p.writeManifest(t, "  ")
	stdout, _, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no packages")

	p.writeManifest(t, "A,url")
	_, _, err = run(t, "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrFormat)
}

func TestInstallUpdateRemoveLifecycle(t *testing.T) {
	p := newProject(t)
	source, hashes := testutil.CreateSourceRepo(t, `{"v":1}`, `{"v":2}`)
	p.writeManifest(t, fmt.Sprintf("com.jsp.audio,%s,%s", source, hashes[0]))

	stdout, _, err := run(t, "install", "com.jsp.audio")
	require.NoError(t, err)
	assert.Contains(t, stdout, "install com.jsp.audio: done")
	assert.Equal(t, `{"v":1}`, testutil.ReadPackageFile(t, filepath.Join(p.packages, "com.jsp.audio")))

	_, stderr, err := run(t, "install", "com.jsp.audio")
	require.Error(t, err)
	assert.Contains(t, stderr, "action not applicable")

	p.writeManifest(t, fmt.Sprintf("com.jsp.audio,%s,%s", source, hashes[1]))
	stdout, _, err = run(t, "plan", "--json", "--refresh")
	require.NoError(t, err)
	var plan syncer.Plan
	require.NoError(t, json.Unmarshal([]byte(stdout), &plan))
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, registry.ActionUpdate, plan.Entries[0].Action)
	assert.Equal(t, hashes[0], plan.Entries[0].LocalRevision)

	_, _, err = run(t, "update", "com.jsp.audio")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, testutil.ReadPackageFile(t, filepath.Join(p.packages, "com.jsp.audio")))

	stdout, _, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "up to date")

	_, _, err = run(t, "remove", "com.jsp.audio")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(p.packages, "com.jsp.audio"))
	assert.True(t, os.IsNotExist(err))
}

func TestInstallUnknownPackage(t *testing.T) {
	p := newProject(t)
	p.writeManifest(t, "A,u,r")
	_, _, err := run(t, "install", "Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, syncer.ErrUnknownPackage)
}

func TestSyncRequiresConfirmationWithoutTerminal(t *testing.T) {
	p := newProject(t)
	p.writeManifest(t, "A,u,r")
	orig := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = orig })

	_, _, err := run(t, "sync")
	require.ErrorIs(t, err, errSyncNeedsConfirmation)
	assert.Contains(t, err.Error(), "--yes")
}

type scriptedUI struct {
	confirm     bool
	multiSelect []string
	selects     map[string]string
	titles      []string
}

func (s *scriptedUI) Select(title string, _ []ui.Option, current *string) error {
	s.titles = append(s.titles, title)
	if value, ok := s.selects[title]; ok {
		*current = value
	}
	return nil
}

func (s *scriptedUI) MultiSelect(title string, _ []ui.Option, selected *[]string) error {
	s.titles = append(s.titles, title)
	*selected = s.multiSelect
	return nil
}

func (s *scriptedUI) Confirm(title string, value *bool) error {
	s.titles = append(s.titles, title)
	*value = s.confirm
	return nil
}

func (s *scriptedUI) Note(string, string) error { return nil }

func withUI(t *testing.T, prompter ui.UI) {
	t.Helper()
	origUI, origInteractive := newUI, isInteractive
	newUI = func() ui.UI { return prompter }
	isInteractive = func() bool { return true }
	t.Cleanup(func() {
		newUI = origUI
		isInteractive = origInteractive
	})
}

func TestSyncAppliesPendingActions(t *testing.T) {
	p := newProject(t)
	audio, audioHashes := testutil.CreateSourceRepo(t, `{"audio":1}`)
	uiRepo, uiHashes := testutil.CreateSourceRepo(t, `{"ui":1}`)
	p.writeManifest(t, fmt.Sprintf("audio,%s,%s;ui,%s,%s", audio, audioHashes[0], uiRepo, uiHashes[0]))

	declined := &scriptedUI{confirm: false}
	withUI(t, declined)
	stdout, _, err := run(t, "sync")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sync cancelled.")
	assert.Equal(t, []string{"Apply 2 change(s)?"}, declined.titles)

	stdout, _, err = run(t, "sync", "--yes", "--jobs", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "install audio: done")
	assert.Contains(t, stdout, "install ui: done")

	stdout, _, err = run(t, "sync", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "All packages are up to date.")
}

func TestSyncReportsFailures(t *testing.T) {
	p := newProject(t)
	p.writeManifest(t, fmt.Sprintf("broken,%s,%s", filepath.Join(p.root, "missing-repo"), "abc"))

	_, stderr, err := run(t, "sync", "--yes", "--log-level", "debug")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 package action(s) failed")
	assert.Contains(t, stderr, "install broken")
	assert.Contains(t, stderr, "sync finished with failures")
}

func TestBrowseAppliesChosenActions(t *testing.T) {
	p := newProject(t)
	audio, audioHashes := testutil.CreateSourceRepo(t, `{"audio":1}`)
	uiRepo, uiHashes := testutil.CreateSourceRepo(t, `{"ui":1}`)
	p.writeManifest(t, fmt.Sprintf("audio,%s,%s;ui,%s,%s", audio, audioHashes[0], uiRepo, uiHashes[0]))

	prompter := &scriptedUI{
		multiSelect: []string{"audio", "ui"},
		selects: map[string]string{
			"Action for ui": string(registry.ActionNone),
		},
	}
	withUI(t, prompter)

	stdout, _, err := run(t, "browse")
	require.NoError(t, err)
	assert.Contains(t, stdout, "install audio: done")
	assert.NotContains(t, stdout, "ui: done")
	assert.Equal(t, []string{"Select packages", "Action for audio", "Action for ui"}, prompter.titles)

	_, err = os.Stat(filepath.Join(p.packages, "audio"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(p.packages, "ui"))
	assert.True(t, os.IsNotExist(err))
}

func TestRefreshDiff(t *testing.T) {
	p := newProject(t)
	cacheDir := filepath.Join(p.root, "cache")
	cfg := fmt.Sprintf("[manifest]\nurl = %q\n[cache]\ndir = %q\n[log]\nlevel = \"error\"\n", p.manifest, cacheDir)
	require.NoError(t, os.WriteFile(config.DefaultConfigPath(p.root), []byte(cfg), 0o644))

	p.writeManifest(t, "A,u,r1;B,u,r")
	_, _, err := run(t, "list")
	require.NoError(t, err)

	stdout, _, err := run(t, "refresh", "--diff")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Manifest unchanged.")

	p.writeManifest(t, "A,u,r2;B,u,r")
	stdout, _, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "r1")
	assert.Contains(t, stdout, "from cache")

	stdout, _, err = run(t, "refresh", "--diff")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Manifest updated.")
	assert.Contains(t, stdout, "-A,u,r1")
	assert.Contains(t, stdout, "+A,u,r2")
	assert.True(t, strings.Contains(stdout, "2 packages"))
}

func TestServeStopsOnSignal(t *testing.T) {
	p := newProject(t)
	p.writeManifest(t, "A,u,r")
	orig := signalContext
	signalContext = func(parent context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(parent)
		cancel()
		return ctx, cancel
	}
	t.Cleanup(func() { signalContext = orig })

	stdout, _, err := run(t, "serve", "--addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Serving package status on http://127.0.0.1:")
}
