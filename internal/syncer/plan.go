package syncer

import (
	"github.com/jacksparrot/jsp/internal/registry"
)

// PlanSchemaVersion is the JSON schema version of Plan.
const PlanSchemaVersion = 1

// Plan is the machine-readable output of `jsp plan`.
type Plan struct {
	SchemaVersion int              `json:"schema_version"`
	Manifest      string           `json:"manifest"`
	FromCache     bool             `json:"from_cache"`
	Summary       registry.Summary `json:"summary"`
	Entries       []PlanEntry      `json:"entries"`
}

// PlanEntry pairs a status with the action it resolves to and every action a user may pick.
type PlanEntry struct {
	registry.PackageStatus
	Action    registry.Action   `json:"action"`
	Available []registry.Action `json:"available_actions"`
}

// BuildPlan describes what ApplyAll would do for snapshot.
func BuildPlan(manifestURL string, snapshot Snapshot) Plan {
	entries := make([]PlanEntry, 0, len(snapshot.Statuses))
	for _, status := range snapshot.Statuses {
		entries = append(entries, PlanEntry{
			PackageStatus: status,
			Action:        registry.ResolveAction(status),
			Available:     registry.AvailableActions(status),
		})
	}
	return Plan{
		SchemaVersion: PlanSchemaVersion,
		Manifest:      manifestURL,
		FromCache:     snapshot.Manifest.FromCache,
		Summary:       snapshot.Summary(),
		Entries:       entries,
	}
}
