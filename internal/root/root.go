// Package root locates the project directory that owns a .jsp folder.
package root

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacksparrot/jsp/internal/messages"
)

// DirName is the per-project directory holding config.toml.
const DirName = ".jsp"

// FindProjectRoot walks up from start looking for a .jsp directory.
// It returns found=false when no ancestor has one.
func FindProjectRoot(start string) (string, bool, error) {
	dir, err := absStart(start)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, DirName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil:
			if !info.IsDir() {
				return "", false, fmt.Errorf(messages.RootPathNotDirFmt, candidate)
			}
			return dir, true, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", false, fmt.Errorf(messages.RootCheckPathFmt, candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// FindRepoRoot returns the project root when one exists, otherwise the nearest
// git work tree, otherwise start itself.
func FindRepoRoot(start string) (string, error) {
	root, found, err := FindProjectRoot(start)
	if err != nil {
		return "", err
	}
	if found {
		return root, nil
	}
	dir, err := absStart(start)
	if err != nil {
		return "", err
	}
	for current := dir; ; {
		candidate := filepath.Join(current, ".git")
		info, err := os.Lstat(candidate)
		switch {
		case err == nil:
			// .git is a file inside linked worktrees and submodules.
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
			return "", fmt.Errorf(messages.RootPathNotDirOrFileFmt, candidate)
		case !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf(messages.RootCheckPathFmt, candidate, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}

func absStart(start string) (string, error) {
	if start == "" {
		return "", errors.New(messages.RootStartPathRequired)
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf(messages.RootResolvePathFmt, start, err)
	}
	return dir, nil
}
