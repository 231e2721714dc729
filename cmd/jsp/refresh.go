package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/syncer"
)

func newRefreshCmd(flags *globalFlags) *cobra.Command {
	var showDiff bool
	cmd := &cobra.Command{
		Use:   messages.RefreshUse,
		Short: messages.RefreshShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(a *app) error {
				snapshot, err := a.session.Snapshot(cmd.Context(), true)
				if err != nil {
					return err
				}
				if !snapshot.Manifest.Changed() {
					a.infof("%s\n", messages.RefreshUnchanged)
					return nil
				}
				a.infof("%s\n", messages.RefreshUpdated)
				if showDiff {
					_, _ = fmt.Fprint(a.stdout, syncer.ManifestDiff(snapshot.Manifest.Previous, snapshot.Manifest.Raw))
				}
				if !a.quiet {
					renderSummary(a.stdout, snapshot)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, messages.FlagDiff)
	return cmd
}
