// Package installer performs package installs and removals and reports what is
// installed locally.
package installer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/registry"
)

// ErrInvalidPackageName is returned for names that are not a single safe path segment.
var ErrInvalidPackageName = errors.New(messages.InstallerInvalidName)

// ErrNotInstalled is returned when removing a package that has no local copy.
var ErrNotInstalled = errors.New(messages.InstallerNotInstalled)

// ErrAlreadyInstalled is returned when installing over an existing local copy.
var ErrAlreadyInstalled = errors.New(messages.InstallerAlreadyInstalled)

// Installer changes local installation state.
type Installer interface {
	Install(ctx context.Context, descriptor registry.PackageDescriptor) error
	Remove(ctx context.Context, name string) error
	Update(ctx context.Context, descriptor registry.PackageDescriptor) error
}

// LocalSource reports the packages currently installed.
type LocalSource interface {
	List(ctx context.Context) ([]registry.LocalInstallationRecord, error)
}

// ValidateName rejects names that cannot be used as a directory name.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != name || name == "." || name == ".." ||
		strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, name)
	}
	return nil
}

// UpdateByReplace implements update as remove followed by install.
// A removal failure aborts before anything is installed.
func UpdateByReplace(ctx context.Context, inst Installer, descriptor registry.PackageDescriptor) error {
	if err := inst.Remove(ctx, descriptor.Name); err != nil && !errors.Is(err, ErrNotInstalled) {
		return fmt.Errorf(messages.InstallerUpdateRemoveFmt, descriptor.Name, err)
	}
	if err := inst.Install(ctx, descriptor); err != nil {
		return fmt.Errorf(messages.InstallerUpdateInstallFmt, descriptor.Name, err)
	}
	return nil
}
