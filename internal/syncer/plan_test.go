package syncer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksparrot/jsp/internal/registry"
	"github.com/jacksparrot/jsp/internal/source"
)

func TestBuildPlan(t *testing.T) {
	snapshot := Snapshot{
		Manifest: source.Result{Raw: "A,u,r;B,u,r", FromCache: true},
		Statuses: []registry.PackageStatus{
			{Name: "A", SourceURL: "u", RemoteRevision: "r"},
			{Name: "B", SourceURL: "u", RemoteRevision: "r", LocalRevision: "r", Installed: true, UpToDate: true},
		},
	}

	plan := BuildPlan("https://example.test/packages", snapshot)

	assert.Equal(t, PlanSchemaVersion, plan.SchemaVersion)
	assert.True(t, plan.FromCache)
	assert.Equal(t, 2, plan.Summary.Total)
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, registry.ActionInstall, plan.Entries[0].Action)
	assert.Equal(t, []registry.Action{registry.ActionInstall}, plan.Entries[0].Available)
	assert.Equal(t, registry.ActionNone, plan.Entries[1].Action)
	assert.Equal(t, []registry.Action{registry.ActionRemove}, plan.Entries[1].Available)

	data, err := json.Marshal(plan)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, PlanSchemaVersion, decoded["schema_version"])
	entries := decoded["entries"].([]any)
	first := entries[0].(map[string]any)
	assert.Equal(t, "install", first["action"])
	assert.Equal(t, "A", first["name"])
}

func TestManifestDiff(t *testing.T) {
	assert.Empty(t, ManifestDiff("A,u,r;B,u,r", " A,u,r ;B,u,r;"))

	diff := ManifestDiff("A,u,r1;B,u,r", "A,u,r2;B,u,r;C,u,r")
	assert.Contains(t, diff, "--- cached")
	assert.Contains(t, diff, "+++ remote")
	assert.Contains(t, diff, "-A,u,r1")
	assert.Contains(t, diff, "+A,u,r2")
	assert.Contains(t, diff, "+C,u,r")
	assert.NotContains(t, diff, "-B,u,r")
}
