package syncer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jacksparrot/jsp/internal/installer"
	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/registry"
	"github.com/jacksparrot/jsp/internal/source"
)

// ErrActionNotApplicable is returned when an action does not fit a package's state,
// such as removing a package that is not installed.
var ErrActionNotApplicable = errors.New(messages.SyncerActionNotApplicable)

// ErrUnknownPackage is returned when a name is not in the manifest.
var ErrUnknownPackage = errors.New(messages.SyncerUnknownPackage)

// ManifestSource loads raw manifest text.
type ManifestSource interface {
	Load(ctx context.Context, refresh bool) (source.Result, error)
}

// Snapshot is one reconciliation of the manifest against local state.
type Snapshot struct {
	Manifest source.Result
	Local    []registry.LocalInstallationRecord
	Statuses []registry.PackageStatus
}

// Summary tallies the snapshot statuses.
func (s Snapshot) Summary() registry.Summary {
	return registry.Summarize(s.Statuses)
}

// Lookup returns the status for each name, failing on the first unknown one.
func (s Snapshot) Lookup(names ...string) ([]registry.PackageStatus, error) {
	statuses := make([]registry.PackageStatus, 0, len(names))
	for _, name := range names {
		status, ok := registry.Find(s.Statuses, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPackage, name)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Session drives reconciliation and installer calls.
type Session struct {
	manifest  ManifestSource
	local     installer.LocalSource
	installer installer.Installer
	log       *zap.SugaredLogger
}

// NewSession wires a session. logger may be nil.
func NewSession(manifest ManifestSource, local installer.LocalSource, inst installer.Installer, logger *zap.SugaredLogger) *Session {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Session{manifest: manifest, local: local, installer: inst, log: logger}
}

// Snapshot loads the manifest (refreshing it when asked), lists local packages once,
// and reconciles the two.
func (s *Session) Snapshot(ctx context.Context, refresh bool) (Snapshot, error) {
	if s.manifest == nil || s.local == nil {
		return Snapshot{}, errors.New(messages.SyncerCollaboratorsRequired)
	}
	result, err := s.manifest.Load(ctx, refresh)
	if err != nil {
		return Snapshot{}, err
	}
	descriptors, err := registry.ParseManifest(result.Raw)
	if err != nil {
		return Snapshot{}, fmt.Errorf(messages.SyncerParseManifestFmt, err)
	}
	s.log.Debugw("loading local packages")
	records, err := s.local.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	statuses := registry.Reconcile(descriptors, records)
	summary := registry.Summarize(statuses)
	s.log.Debugw("reconciled packages",
		"total", summary.Total,
		"installed", summary.Installed,
		"outdated", summary.Outdated,
		"missing", summary.Missing,
		"from_cache", result.FromCache,
	)
	return Snapshot{Manifest: result, Local: records, Statuses: statuses}, nil
}

// Apply performs action for status through the installer and waits for it to finish.
// ActionNone is a no-op. A cancelled ctx fails before the installer is called.
func (s *Session) Apply(ctx context.Context, status registry.PackageStatus, action registry.Action) error {
	if s.installer == nil {
		return errors.New(messages.SyncerCollaboratorsRequired)
	}
	if err := checkApplicable(status, action); err != nil {
		return err
	}
	if action == registry.ActionNone {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	switch action {
	case registry.ActionInstall:
		return s.installer.Install(ctx, status.Descriptor())
	case registry.ActionUpdate:
		return s.installer.Update(ctx, status.Descriptor())
	case registry.ActionRemove:
		return s.installer.Remove(ctx, status.Name)
	default:
		return nil
	}
}

// checkApplicable rejects actions that contradict the reconciled state.
// Update is accepted for any installed package so a user can force a reinstall.
func checkApplicable(status registry.PackageStatus, action registry.Action) error {
	switch action {
	case registry.ActionInstall:
		if status.Installed {
			return fmt.Errorf(messages.SyncerNotApplicableFmt, ErrActionNotApplicable, action, status.Name, messages.SyncerStateInstalled)
		}
	case registry.ActionUpdate, registry.ActionRemove:
		if !status.Installed {
			return fmt.Errorf(messages.SyncerNotApplicableFmt, ErrActionNotApplicable, action, status.Name, messages.SyncerStateNotInstalled)
		}
	case registry.ActionNone:
	default:
		return fmt.Errorf(messages.RegistryUnknownActionFmt, action)
	}
	return nil
}
