// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// PackageFile is the file committed by CreateSourceRepo.
const PackageFile = "package.json"

// CreateSourceRepo builds a repository in a temp dir with one commit per
// content entry, each writing PackageFile. It returns the repository path and
// the commit hashes in order.
func CreateSourceRepo(t *testing.T, contents ...string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}

	hashes := make([]string, 0, len(contents))
	for i, content := range contents {
		if err := os.WriteFile(filepath.Join(dir, PackageFile), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", PackageFile, err)
		}
		if _, err := worktree.Add(PackageFile); err != nil {
			t.Fatalf("add %s: %v", PackageFile, err)
		}
		hash, err := worktree.Commit("commit", &git.CommitOptions{
			Author: &object.Signature{
				Name:  "Test Author",
				Email: "test@example.com",
				When:  time.Unix(int64(1700000000+i), 0),
			},
		})
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
		hashes = append(hashes, hash.String())
	}
	return dir, hashes
}

// ReadPackageFile returns PackageFile inside an installed package directory.
func ReadPackageFile(t *testing.T, packageDir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(packageDir, PackageFile))
	if err != nil {
		t.Fatalf("read %s: %v", PackageFile, err)
	}
	return string(data)
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
