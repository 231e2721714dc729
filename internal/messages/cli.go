package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse          = "jsp"
	RootShort        = "Synchronize project packages with a remote manifest"
	RootLong         = "jsp compares a remote package manifest with the packages installed in this project\nand installs, updates, or removes them."
	RootVersionFlag  = "Print version and exit"
	RootFlagConfig   = "Path to config.toml (default: <project>/.jsp/config.toml)"
	RootFlagLogLevel = "Log level: debug, info, warn, or error (overrides config)"
	RootFlagQuiet    = "Suppress informational output"
	RootFlagNoCache  = "Keep the manifest cache in memory for this run"
	RootMissingFmt   = "jsp isn't initialized in this project (missing .jsp/config.toml); run 'jsp init' or set %s"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	FlagRefresh = "Download the manifest instead of using the cached copy"
	FlagYes     = "Apply without asking for confirmation"
	FlagJobs    = "Number of packages processed concurrently (default from config)"
	FlagJSON    = "Print machine-readable JSON"
	FlagDiff    = "Show a diff between the cached and downloaded manifest"
	FlagAddr    = "Listen address (default from config)"
	FlagForce   = "Overwrite an existing config file"

	ListUse   = "list"
	ListShort = "Show manifest packages and their local state"

	InstallUse   = "install <package>..."
	InstallShort = "Install packages from the manifest"
	UpdateUse    = "update <package>..."
	UpdateShort  = "Reinstall packages at the manifest revision"
	RemoveUse    = "remove <package>..."
	RemoveShort  = "Remove installed packages"

	SyncUse             = "sync"
	SyncShort           = "Install missing and update outdated packages"
	SyncNothingToDo     = "All packages are up to date."
	SyncPendingHeader   = "Pending changes:"
	SyncPendingLineFmt  = "  %-7s %s\n"
	SyncConfirmFmt      = "Apply %d change(s)?"
	SyncRequiresConfirm = "sync needs confirmation; re-run with --yes or from an interactive terminal"
	SyncAborted         = "Sync cancelled."

	PlanUse   = "plan"
	PlanShort = "Show the actions sync would perform"

	RefreshUse       = "refresh"
	RefreshShort     = "Download the manifest and update the cache"
	RefreshUpdated   = "Manifest updated."
	RefreshUnchanged = "Manifest unchanged."

	BrowseUse           = "browse"
	BrowseShort         = "Pick packages and actions interactively"
	BrowsePickPackages  = "Select packages"
	BrowsePickActionFmt = "Action for %s"
	BrowseNoneSelected  = "No packages selected."
	BrowseSkip          = "skip"

	ServeUse          = "serve"
	ServeShort        = "Serve package status over HTTP"
	ServeListeningFmt = "Serving package status on http://%s\n"

	InitUse       = "init"
	InitShort     = "Write a default .jsp/config.toml"
	InitExistsFmt = "%s already exists; re-run with --force to overwrite"
	InitWroteFmt  = "Wrote %s\nEdit manifest.url, then run 'jsp list'.\n"
	InitMkdirFmt  = "create %s: %w"
	InitWriteFmt  = "write %s: %w"

	ActionDoneFmt    = "%s %s: done\n"
	ActionFailedFmt  = "%s %s: %v\n"
	ActionsFailedFmt = "%d package action(s) failed"

	TableHeaderName     = "NAME"
	TableHeaderLocal    = "LOCAL"
	TableHeaderRemote   = "REMOTE"
	TableHeaderStatus   = "STATUS"
	TableHeaderAction   = "ACTION"
	StatusUpToDate      = "up to date"
	StatusOutdated      = "outdated"
	StatusNotInstalled  = "not installed"
	SummaryFmt          = "%d packages: %d up to date, %d outdated, %d not installed\n"
	SummaryFromCache    = "(manifest from cache; use --refresh to download)"
	TableEmptyManifest  = "The manifest lists no packages."
	RevisionPlaceholder = "-"
)
