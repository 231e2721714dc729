package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/registry"
	"github.com/jacksparrot/jsp/internal/syncer"
	"github.com/jacksparrot/jsp/internal/ui"
)

func newBrowseCmd(flags *globalFlags) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   messages.BrowseUse,
		Short: messages.BrowseShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(a *app) error {
				snapshot, err := a.session.Snapshot(cmd.Context(), refresh)
				if err != nil {
					return err
				}
				if len(snapshot.Statuses) == 0 {
					a.infof("%s\n", messages.TableEmptyManifest)
					return nil
				}
				prompter := newUI()
				choices, err := browseChoices(prompter, snapshot.Statuses)
				if err != nil {
					return err
				}
				if len(choices) == 0 {
					a.infof("%s\n", messages.BrowseNoneSelected)
					return nil
				}
				outcomes := make([]syncer.Outcome, 0, len(choices))
				for _, choice := range choices {
					err := a.session.Apply(cmd.Context(), choice.status, choice.action)
					outcomes = append(outcomes, syncer.Outcome{Name: choice.status.Name, Action: choice.action, Err: err})
				}
				return reportOutcomes(a, outcomes)
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, messages.FlagRefresh)
	return cmd
}

type browseChoice struct {
	status registry.PackageStatus
	action registry.Action
}

// browseChoices asks for packages, then for one action per selected package.
// Packages whose only choice is skip are not offered.
func browseChoices(prompter ui.UI, statuses []registry.PackageStatus) ([]browseChoice, error) {
	options := make([]ui.Option, 0, len(statuses))
	for _, status := range statuses {
		if len(registry.AvailableActions(status)) == 0 {
			continue
		}
		options = append(options, ui.Option{
			Label: fmt.Sprintf("%s (%s)", status.Name, plainStatus(status)),
			Value: status.Name,
		})
	}
	if len(options) == 0 {
		return nil, nil
	}

	var selected []string
	if err := prompter.MultiSelect(messages.BrowsePickPackages, options, &selected); err != nil {
		return nil, err
	}

	choices := make([]browseChoice, 0, len(selected))
	for _, name := range selected {
		status, ok := registry.Find(statuses, name)
		if !ok {
			continue
		}
		available := registry.AvailableActions(status)
		actionOptions := make([]ui.Option, 0, len(available)+1)
		for _, action := range available {
			actionOptions = append(actionOptions, ui.Option{Label: string(action), Value: string(action)})
		}
		actionOptions = append(actionOptions, ui.Option{Label: messages.BrowseSkip, Value: string(registry.ActionNone)})

		picked := string(available[0])
		if err := prompter.Select(fmt.Sprintf(messages.BrowsePickActionFmt, name), actionOptions, &picked); err != nil {
			return nil, err
		}
		action, err := registry.ParseAction(picked)
		if err != nil {
			return nil, err
		}
		if action == registry.ActionNone {
			continue
		}
		choices = append(choices, browseChoice{status: status, action: action})
	}
	return choices, nil
}

func plainStatus(status registry.PackageStatus) string {
	switch {
	case !status.Installed:
		return messages.StatusNotInstalled
	case !status.UpToDate:
		return messages.StatusOutdated
	default:
		return messages.StatusUpToDate
	}
}
