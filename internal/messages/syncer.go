package messages

// Syncer messages for reconciliation and package actions.
const (
	SyncerCollaboratorsRequired = "sync session is missing a manifest source, local source, or installer"
	SyncerParseManifestFmt      = "parse manifest: %w"
	SyncerActionNotApplicable   = "action not applicable"
	SyncerUnknownPackage        = "package not in manifest"
	SyncerNotApplicableFmt      = "%w: cannot %s %s (%s)"
	SyncerStateInstalled        = "already installed"
	SyncerStateNotInstalled     = "not installed"
	SyncerOutcomeErrFmt         = "%s %s: %w"
	SyncerProgressStart         = "syncing packages"
	SyncerProgressFmt           = "%s %s"
)
