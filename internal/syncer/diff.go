package syncer

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/jacksparrot/jsp/internal/registry"
)

// ManifestDiff renders a unified diff between two raw manifests with one record
// per line. It returns "" when the records are identical.
func ManifestDiff(previous string, current string) string {
	from := recordLines(previous)
	to := recordLines(current)
	if from == to {
		return ""
	}
	return udiff.Unified("cached", "remote", from, to)
}

func recordLines(raw string) string {
	var b strings.Builder
	for _, record := range strings.Split(raw, registry.RecordSeparator) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		b.WriteString(record)
		b.WriteString("\n")
	}
	return b.String()
}
