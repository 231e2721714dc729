package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/registry"
	"github.com/jacksparrot/jsp/internal/syncer"
	"github.com/jacksparrot/jsp/internal/terminal"
)

var errSyncNeedsConfirmation = errors.New(messages.SyncRequiresConfirm)

func newSyncCmd(flags *globalFlags) *cobra.Command {
	var (
		refresh bool
		yes     bool
		jobs    int
	)
	cmd := &cobra.Command{
		Use:   messages.SyncUse,
		Short: messages.SyncShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(a *app) error {
				snapshot, err := a.session.Snapshot(cmd.Context(), refresh)
				if err != nil {
					return err
				}
				pending := syncer.Pending(snapshot.Statuses)
				if len(pending) == 0 {
					a.infof("%s\n", messages.SyncNothingToDo)
					return nil
				}

				a.infof("%s\n", messages.SyncPendingHeader)
				for _, status := range pending {
					a.infof(messages.SyncPendingLineFmt, registry.ResolveAction(status), status.Name)
				}

				if !yes {
					if !isInteractive() {
						return errSyncNeedsConfirmation
					}
					confirmed := true
					if err := newUI().Confirm(fmt.Sprintf(messages.SyncConfirmFmt, len(pending)), &confirmed); err != nil {
						return err
					}
					if !confirmed {
						a.infof("%s\n", messages.SyncAborted)
						return nil
					}
				}

				if jobs <= 0 {
					jobs = a.cfg.Sync.Jobs
				}
				opts := syncer.ApplyOptions{Jobs: jobs, Progress: progressWriter(a)}
				outcomes, applyErr := a.session.ApplyAll(cmd.Context(), pending, opts)
				if applyErr != nil {
					a.log.Debugw("sync finished with failures", "error", applyErr)
				}
				return reportOutcomes(a, outcomes)
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, messages.FlagRefresh)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, messages.FlagJobs)
	return cmd
}

// progressWriter returns stderr when it is a terminal and output is not quiet.
func progressWriter(a *app) io.Writer {
	if a.quiet || !terminal.IsTerminalWriter(a.stderr) {
		return nil
	}
	return a.stderr
}
