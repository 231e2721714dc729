package main

import (
	"github.com/spf13/cobra"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/registry"
	"github.com/jacksparrot/jsp/internal/syncer"
)

func newInstallCmd(flags *globalFlags) *cobra.Command {
	return newActionCmd(flags, registry.ActionInstall, messages.InstallUse, messages.InstallShort)
}

func newUpdateCmd(flags *globalFlags) *cobra.Command {
	return newActionCmd(flags, registry.ActionUpdate, messages.UpdateUse, messages.UpdateShort)
}

func newRemoveCmd(flags *globalFlags) *cobra.Command {
	return newActionCmd(flags, registry.ActionRemove, messages.RemoveUse, messages.RemoveShort)
}

// newActionCmd builds a command applying one action to the named packages.
// Packages are processed in argument order; a failure does not stop the rest.
func newActionCmd(flags *globalFlags, action registry.Action, use string, short string) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(a *app) error {
				snapshot, err := a.session.Snapshot(cmd.Context(), refresh)
				if err != nil {
					return err
				}
				statuses, err := snapshot.Lookup(args...)
				if err != nil {
					return err
				}
				outcomes := make([]syncer.Outcome, 0, len(statuses))
				for _, status := range statuses {
					err := a.session.Apply(cmd.Context(), status, action)
					outcomes = append(outcomes, syncer.Outcome{Name: status.Name, Action: action, Err: err})
				}
				return reportOutcomes(a, outcomes)
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, messages.FlagRefresh)
	return cmd
}
