package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksparrot/jsp/internal/messages"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(a *app) error {
				snapshot, err := a.session.Snapshot(cmd.Context(), refresh)
				if err != nil {
					return err
				}
				if len(snapshot.Statuses) == 0 {
					_, _ = fmt.Fprintln(a.stdout, messages.TableEmptyManifest)
					return nil
				}
				if err := renderStatuses(a.stdout, snapshot.Statuses); err != nil {
					return err
				}
				if !a.quiet {
					renderSummary(a.stdout, snapshot)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, messages.FlagRefresh)
	return cmd
}
