package root

import (
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// layout creates dirs and files (paths relative to base) and returns base.
func layout(t *testing.T, dirs []string, files map[string]string) string {
	t.Helper()
	base := t.TempDir()
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(base, dir), 0o755))
	}
	for name, content := range files {
		path := filepath.Join(base, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return base
}

func TestFindProjectRoot(t *testing.T) {
	tests := []struct {
		name      string
		dirs      []string
		start     string
		wantRoot  string
		wantFound bool
	}{
		{name: "at start", dirs: []string{DirName}, start: ".", wantRoot: ".", wantFound: true},
		{name: "ancestor", dirs: []string{DirName, "Assets/Scripts"}, start: "Assets/Scripts", wantRoot: ".", wantFound: true},
		{name: "nearest wins", dirs: []string{DirName, "nested/" + DirName, "nested/deep"}, start: "nested/deep", wantRoot: "nested", wantFound: true},
		{name: "missing", dirs: []string{"Assets"}, start: "Assets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := layout(t, tt.dirs, nil)
			got, found, err := FindProjectRoot(filepath.Join(base, tt.start))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, filepath.Join(base, tt.wantRoot), got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestFindProjectRootRejectsFile(t *testing.T) {
	base := layout(t, nil, map[string]string{DirName: "x"})
	_, _, err := FindProjectRoot(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), DirName)
}

func TestFindRepoRoot(t *testing.T) {
	tests := []struct {
		name     string
		dirs     []string
		files    map[string]string
		start    string
		wantRoot string
	}{
		{
			name:     "project dir beats git",
			dirs:     []string{".git", "game/" + DirName, "game/Assets"},
			start:    "game/Assets",
			wantRoot: "game",
		},
		{
			name:     "git directory",
			dirs:     []string{".git", "Assets/Scripts"},
			start:    "Assets/Scripts",
			wantRoot: ".",
		},
		{
			name:     "git file in linked worktree",
			dirs:     []string{"Assets"},
			files:    map[string]string{".git": "gitdir: ../main/.git/worktrees/x\n"},
			start:    "Assets",
			wantRoot: ".",
		},
		{
			name:     "falls back to start",
			dirs:     []string{"loose/inner"},
			start:    "loose/inner",
			wantRoot: "loose/inner",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := layout(t, tt.dirs, tt.files)
			got, err := FindRepoRoot(filepath.Join(base, tt.start))
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(base, tt.wantRoot), got)
		})
	}
}

func TestFindRepoRootGitSpecialFileErrors(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("mkfifo is not supported on windows")
	}
	base := t.TempDir()
	require.NoError(t, syscall.Mkfifo(filepath.Join(base, ".git"), 0o644))

	_, err := FindRepoRoot(base)
	require.Error(t, err)
}

func TestFindRootsRequireStartPath(t *testing.T) {
	_, _, err := FindProjectRoot("")
	require.Error(t, err)
	_, err = FindRepoRoot("")
	require.Error(t, err)
}
