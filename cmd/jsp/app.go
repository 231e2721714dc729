package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacksparrot/jsp/internal/cache"
	"github.com/jacksparrot/jsp/internal/config"
	"github.com/jacksparrot/jsp/internal/fetch"
	"github.com/jacksparrot/jsp/internal/installer"
	"github.com/jacksparrot/jsp/internal/logging"
	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/registry"
	"github.com/jacksparrot/jsp/internal/root"
	"github.com/jacksparrot/jsp/internal/source"
	"github.com/jacksparrot/jsp/internal/syncer"
	"github.com/jacksparrot/jsp/internal/terminal"
	"github.com/jacksparrot/jsp/internal/ui"
)

// Test seams.
var (
	getwd         = os.Getwd
	isInteractive = terminal.IsInteractive
	newUI         = func() ui.UI { return ui.NewHuhUI() }
	newFetcher    = func(cfg *config.Config, logger *zap.SugaredLogger) fetch.Fetcher {
		return fetch.NewHTTPFetcher(fetch.Options{
			Timeout:  cfg.Manifest.TimeoutDuration(),
			Retries:  cfg.Manifest.RetryCount(),
			MaxBytes: cfg.Manifest.MaxBytes,
			Logger:   logger,
		})
	}
)

// app holds the collaborators built from config for one command run.
type app struct {
	cfg       *config.Config
	paths     config.Paths
	log       *zap.SugaredLogger
	source    *source.Source
	installer *installer.GitInstaller
	session   *syncer.Session
	stdout    io.Writer
	stderr    io.Writer
	quiet     bool
	closeLog  func()
}

// Close flushes the logger and restores the zap global.
func (a *app) Close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

// infof prints informational output unless --quiet is set.
func (a *app) infof(format string, args ...any) {
	if a.quiet {
		return
	}
	_, _ = fmt.Fprintf(a.stdout, format, args...)
}

// loadApp resolves the project, loads config, and wires the session.
func loadApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, paths, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	if flags.quiet && flags.logLevel == "" {
		level = "warn"
	}
	logger, closeLog, err := logging.Install(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	var store cache.Store = cache.NewMemoryStore()
	if paths.CacheDir != "" && !flags.noCache {
		store = cache.NewFileStore(paths.CacheDir)
	}
	src := source.New(newFetcher(cfg, logger), store, cfg.Manifest.URL, logger,
		source.WithValidator(registry.ValidateManifest))
	inst, err := installer.NewGitInstaller(paths.PackagesDir, installer.RealSystem{}, logger)
	if err != nil {
		closeLog()
		return nil, err
	}
	logger.Debugw("loaded config",
		"config", paths.ConfigPath,
		"packages", paths.PackagesDir,
		"cache", paths.CacheDir,
	)
	return &app{
		cfg:       cfg,
		paths:     paths,
		log:       logger,
		source:    src,
		installer: inst,
		session:   syncer.NewSession(src, inst, inst, logger),
		stdout:    cmd.OutOrStdout(),
		stderr:    cmd.ErrOrStderr(),
		quiet:     flags.quiet,
		closeLog:  closeLog,
	}, nil
}

// loadConfig finds config.toml. Without one, JSP_MANIFEST_URL alone is enough
// to run against the built-in defaults.
func loadConfig(flags *globalFlags) (*config.Config, config.Paths, error) {
	cwd, err := getwd()
	if err != nil {
		return nil, config.Paths{}, err
	}

	projectRoot, configPath, err := resolveConfigPath(cwd, flags.configPath)
	if err != nil {
		return nil, config.Paths{}, err
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		if value, ok := os.LookupEnv(config.EnvManifestURL); !ok || value == "" {
			return nil, config.Paths{}, fmt.Errorf(messages.RootMissingFmt, config.EnvManifestURL)
		}
		cfg, err = config.Default()
	}
	if err != nil {
		return nil, config.Paths{}, err
	}
	paths, err := cfg.ResolvePaths(projectRoot, configPath)
	if err != nil {
		return nil, config.Paths{}, err
	}
	return cfg, paths, nil
}

// resolveConfigPath returns the project root and config path. configPath is
// empty when no config file exists.
func resolveConfigPath(cwd string, explicit string) (string, string, error) {
	if explicit != "" {
		projectRoot, err := root.FindRepoRoot(cwd)
		if err != nil {
			return "", "", err
		}
		return projectRoot, explicit, nil
	}
	projectRoot, found, err := root.FindProjectRoot(cwd)
	if err != nil {
		return "", "", err
	}
	if found {
		path := config.DefaultConfigPath(projectRoot)
		if _, err := os.Stat(path); err == nil {
			return projectRoot, path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", "", err
		}
		return projectRoot, "", nil
	}
	projectRoot, err = root.FindRepoRoot(cwd)
	if err != nil {
		return "", "", err
	}
	return projectRoot, "", nil
}

// runWithApp loads the app, runs fn, and closes the app.
func runWithApp(cmd *cobra.Command, flags *globalFlags, fn func(*app) error) error {
	a, err := loadApp(cmd, flags)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
