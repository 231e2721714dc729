package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/registry"
	"github.com/jacksparrot/jsp/internal/syncer"
)

// statusLabel returns the colored state of status.
func statusLabel(status registry.PackageStatus) string {
	switch {
	case !status.Installed:
		return color.RedString(messages.StatusNotInstalled)
	case !status.UpToDate:
		return color.YellowString(messages.StatusOutdated)
	default:
		return color.GreenString(messages.StatusUpToDate)
	}
}

func revisionCell(revision string) string {
	if revision == "" {
		return messages.RevisionPlaceholder
	}
	return revision
}

func actionCell(action registry.Action) string {
	if action == registry.ActionNone {
		return messages.RevisionPlaceholder
	}
	return string(action)
}

// renderStatuses writes a status table with one row per package.
func renderStatuses(w io.Writer, statuses []registry.PackageStatus) error {
	table := tablewriter.NewWriter(w)
	table.Header(
		messages.TableHeaderName,
		messages.TableHeaderLocal,
		messages.TableHeaderRemote,
		messages.TableHeaderStatus,
		messages.TableHeaderAction,
	)
	for _, status := range statuses {
		row := []string{
			status.Name,
			revisionCell(status.LocalRevision),
			revisionCell(status.RemoteRevision),
			statusLabel(status),
			actionCell(registry.ResolveAction(status)),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// renderSummary writes the one-line tally under a table.
func renderSummary(w io.Writer, snapshot syncer.Snapshot) {
	summary := snapshot.Summary()
	_, _ = fmt.Fprintf(w, messages.SummaryFmt, summary.Total, summary.UpToDate, summary.Outdated, summary.Missing)
	if snapshot.Manifest.FromCache {
		_, _ = fmt.Fprintln(w, color.New(color.Faint).Sprint(messages.SummaryFromCache))
	}
}

// reportOutcomes prints one line per outcome and returns a summary error when any failed.
func reportOutcomes(a *app, outcomes []syncer.Outcome) error {
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			_, _ = fmt.Fprint(a.stderr, color.RedString(messages.ActionFailedFmt, outcome.Action, outcome.Name, outcome.Err))
			continue
		}
		a.infof(messages.ActionDoneFmt, outcome.Action, outcome.Name)
	}
	if failed > 0 {
		return fmt.Errorf(messages.ActionsFailedFmt, failed)
	}
	return nil
}
