package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/root"
)

// Paths holds resolved paths for a project.
type Paths struct {
	Root        string
	ConfigPath  string
	PackagesDir string
	// CacheDir is empty when the cache is memory only.
	CacheDir string
}

// DefaultConfigPath returns <root>/.jsp/config.toml.
func DefaultConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, root.DirName, "config.toml")
}

// ResolvePaths expands ~ and makes relative directories absolute against projectRoot.
func (c *Config) ResolvePaths(projectRoot string, configPath string) (Paths, error) {
	packages, err := resolveDir(projectRoot, c.Packages.Dir)
	if err != nil {
		return Paths{}, err
	}
	var cacheDir string
	if c.Cache.Dir != nil && *c.Cache.Dir != "" {
		cacheDir, err = resolveDir(projectRoot, *c.Cache.Dir)
		if err != nil {
			return Paths{}, err
		}
	}
	return Paths{
		Root:        projectRoot,
		ConfigPath:  configPath,
		PackagesDir: packages,
		CacheDir:    cacheDir,
	}, nil
}

func resolveDir(projectRoot string, dir string) (string, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, dir, err)
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(projectRoot, expanded), nil
}
