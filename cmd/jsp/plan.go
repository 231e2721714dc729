package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/syncer"
)

func newPlanCmd(flags *globalFlags) *cobra.Command {
	var (
		refresh bool
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(a *app) error {
				snapshot, err := a.session.Snapshot(cmd.Context(), refresh)
				if err != nil {
					return err
				}
				if jsonOut {
					enc := json.NewEncoder(a.stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(syncer.BuildPlan(a.cfg.Manifest.URL, snapshot))
				}
				pending := syncer.Pending(snapshot.Statuses)
				if len(pending) == 0 {
					a.infof("%s\n", messages.SyncNothingToDo)
					return nil
				}
				return renderStatuses(a.stdout, pending)
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, messages.FlagRefresh)
	cmd.Flags().BoolVar(&jsonOut, "json", false, messages.FlagJSON)
	return cmd
}
