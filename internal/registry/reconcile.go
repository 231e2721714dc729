package registry

// Reconcile merges manifest descriptors with a snapshot of local installation
// records. The result has one status per descriptor, in descriptor order.
// Records are matched by exact name; when several records share a name the last
// one wins. Neither input is modified.
func Reconcile(descriptors []PackageDescriptor, records []LocalInstallationRecord) []PackageStatus {
	byName := make(map[string]LocalInstallationRecord, len(records))
	for _, record := range records {
		byName[record.Name] = record
	}

	statuses := make([]PackageStatus, 0, len(descriptors))
	for _, d := range descriptors {
		status := PackageStatus{
			Name:           d.Name,
			SourceURL:      d.SourceURL,
			RemoteRevision: d.RemoteRevision,
		}
		if record, ok := byName[d.Name]; ok {
			status.Installed = true
			status.LocalRevision = record.LocalRevision
			status.UpToDate = record.LocalRevision == d.RemoteRevision
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// Find returns the status named name.
func Find(statuses []PackageStatus, name string) (PackageStatus, bool) {
	for _, status := range statuses {
		if status.Name == name {
			return status, true
		}
	}
	return PackageStatus{}, false
}
