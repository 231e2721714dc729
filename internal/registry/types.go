package registry

import "strings"

// PackageDescriptor is one entry of the remote manifest.
type PackageDescriptor struct {
	Name           string `json:"name"`
	SourceURL      string `json:"source_url"`
	RemoteRevision string `json:"remote_revision"`
}

// LocalInstallationRecord is the observed state of an installed package.
type LocalInstallationRecord struct {
	Name          string `json:"name"`
	LocalRevision string `json:"local_revision"`
}

// PackageStatus is the reconciled view of one manifest entry.
// LocalRevision is empty and UpToDate is false whenever Installed is false.
type PackageStatus struct {
	Name           string `json:"name"`
	SourceURL      string `json:"source_url"`
	RemoteRevision string `json:"remote_revision"`
	LocalRevision  string `json:"local_revision,omitempty"`
	Installed      bool   `json:"installed"`
	UpToDate       bool   `json:"up_to_date"`
}

// Descriptor returns the manifest descriptor the status was derived from.
func (s PackageStatus) Descriptor() PackageDescriptor {
	return PackageDescriptor{
		Name:           s.Name,
		SourceURL:      s.SourceURL,
		RemoteRevision: s.RemoteRevision,
	}
}

// InstallReference returns the "url#revision" reference handed to installers.
// The revision suffix is omitted when the descriptor carries none.
func (d PackageDescriptor) InstallReference() string {
	if strings.TrimSpace(d.RemoteRevision) == "" {
		return d.SourceURL
	}
	return d.SourceURL + "#" + d.RemoteRevision
}

// InstallReference returns the install reference of the underlying descriptor.
func (s PackageStatus) InstallReference() string {
	return s.Descriptor().InstallReference()
}

// Summary counts reconciled statuses by state.
type Summary struct {
	Total     int `json:"total"`
	Installed int `json:"installed"`
	UpToDate  int `json:"up_to_date"`
	Outdated  int `json:"outdated"`
	Missing   int `json:"missing"`
}

// Summarize tallies statuses for display and metrics.
func Summarize(statuses []PackageStatus) Summary {
	summary := Summary{Total: len(statuses)}
	for _, status := range statuses {
		if !status.Installed {
			summary.Missing++
			continue
		}
		summary.Installed++
		if status.UpToDate {
			summary.UpToDate++
		} else {
			summary.Outdated++
		}
	}
	return summary
}
