package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/registry"
)

// GitInstaller installs packages as git checkouts under a packages directory,
// one directory per package name. The local revision of a package is the
// commit hash of its HEAD.
type GitInstaller struct {
	dir string
	sys System
	log *zap.SugaredLogger
}

var plainCloneContext = git.PlainCloneContext
var plainOpen = git.PlainOpen

// NewGitInstaller returns an installer rooted at dir.
func NewGitInstaller(dir string, sys System, logger *zap.SugaredLogger) (*GitInstaller, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New(messages.InstallerDirRequired)
	}
	if sys == nil {
		sys = RealSystem{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &GitInstaller{dir: dir, sys: sys, log: logger}, nil
}

// Dir returns the packages directory.
func (g *GitInstaller) Dir() string {
	return g.dir
}

// Install clones descriptor.SourceURL and checks out descriptor.RemoteRevision.
// The clone happens in a temporary directory that is renamed into place only after
// checkout succeeds, so a failed install leaves nothing behind.
func (g *GitInstaller) Install(ctx context.Context, descriptor registry.PackageDescriptor) error {
	if err := ValidateName(descriptor.Name); err != nil {
		return err
	}
	if strings.TrimSpace(descriptor.SourceURL) == "" {
		return fmt.Errorf(messages.InstallerSourceRequiredFmt, descriptor.Name)
	}
	target := g.packagePath(descriptor.Name)
	if _, err := g.sys.Stat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyInstalled, descriptor.Name)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.InstallerStatFmt, target, err)
	}
	if err := g.sys.MkdirAll(g.dir, 0o755); err != nil {
		return fmt.Errorf(messages.InstallerCreateDirFmt, g.dir, err)
	}

	staging, err := g.sys.MkdirTemp(g.dir, "."+descriptor.Name+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.InstallerCreateDirFmt, g.dir, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = g.sys.RemoveAll(staging)
		}
	}()

	g.log.Infow("installing package", "package", descriptor.Name, "ref", descriptor.InstallReference())
	repo, err := plainCloneContext(ctx, staging, false, &git.CloneOptions{URL: descriptor.SourceURL})
	if err != nil {
		return fmt.Errorf(messages.InstallerCloneFmt, descriptor.SourceURL, err)
	}
	if err := checkoutRevision(repo, descriptor.RemoteRevision); err != nil {
		return fmt.Errorf(messages.InstallerCheckoutFmt, descriptor.RemoteRevision, descriptor.Name, err)
	}
	if err := g.sys.Rename(staging, target); err != nil {
		return fmt.Errorf(messages.InstallerMoveFmt, target, err)
	}
	committed = true
	return nil
}

// Remove deletes the package directory for name.
func (g *GitInstaller) Remove(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	target := g.packagePath(name)
	if _, err := g.sys.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotInstalled, name)
		}
		return fmt.Errorf(messages.InstallerStatFmt, target, err)
	}
	g.log.Infow("removing package", "package", name)
	if err := g.sys.RemoveAll(target); err != nil {
		return fmt.Errorf(messages.InstallerRemoveFmt, target, err)
	}
	return nil
}

// Update removes the installed copy and installs descriptor again.
func (g *GitInstaller) Update(ctx context.Context, descriptor registry.PackageDescriptor) error {
	return UpdateByReplace(ctx, g, descriptor)
}

// List reports every git checkout in the packages directory, sorted by name.
// Entries that are not directories or not repositories are skipped.
func (g *GitInstaller) List(ctx context.Context) ([]registry.LocalInstallationRecord, error) {
	entries, err := g.sys.ReadDir(g.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []registry.LocalInstallationRecord{}, nil
		}
		return nil, fmt.Errorf(messages.InstallerListFmt, g.dir, err)
	}
	records := make([]registry.LocalInstallationRecord, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if !entry.IsDir() || ValidateName(name) != nil {
			continue
		}
		revision, err := headRevision(g.packagePath(name))
		if err != nil {
			g.log.Debugw("skipping package directory", "package", name, "error", err)
			continue
		}
		records = append(records, registry.LocalInstallationRecord{Name: name, LocalRevision: revision})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

func (g *GitInstaller) packagePath(name string) string {
	return filepath.Join(g.dir, name)
}

// checkoutRevision detaches HEAD at revision. An empty revision keeps the cloned default branch.
func checkoutRevision(repo *git.Repository, revision string) error {
	revision = strings.TrimSpace(revision)
	if revision == "" {
		return nil
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		hash, err = repo.ResolveRevision(plumbing.Revision("refs/remotes/origin/" + revision))
		if err != nil {
			return err
		}
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}
	return worktree.Checkout(&git.CheckoutOptions{Hash: *hash})
}

func headRevision(path string) (string, error) {
	repo, err := plainOpen(path)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}
