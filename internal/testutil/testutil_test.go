package testutil

import (
	"testing"

	"github.com/go-git/go-git/v5"
)

func TestCreateSourceRepo(t *testing.T) {
	dir, hashes := CreateSourceRepo(t, "one", "two")
	if len(hashes) != 2 {
		t.Fatalf("expected 2 hashes, got %d", len(hashes))
	}
	if hashes[0] == hashes[1] {
		t.Fatalf("expected distinct commits")
	}

	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if head.Hash().String() != hashes[1] {
		t.Fatalf("expected HEAD %s, got %s", hashes[1], head.Hash())
	}
	if got := ReadPackageFile(t, dir); got != "two" {
		t.Fatalf("expected latest content, got %q", got)
	}
}

func TestIntPtr(t *testing.T) {
	if got := IntPtr(3); got == nil || *got != 3 {
		t.Fatalf("expected pointer to 3")
	}
}
