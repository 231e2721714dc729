package messages

// Installer messages for package installation.
const (
	InstallerInvalidName       = "invalid package name"
	InstallerNotInstalled      = "package is not installed"
	InstallerAlreadyInstalled  = "package is already installed"
	InstallerDirRequired       = "packages directory is required"
	InstallerSourceRequiredFmt = "package %s has no source url"
	InstallerStatFmt           = "check %s: %w"
	InstallerCreateDirFmt      = "create packages dir %s: %w"
	InstallerCloneFmt          = "clone %s: %w"
	InstallerCheckoutFmt       = "checkout %s for %s: %w"
	InstallerMoveFmt           = "move package into %s: %w"
	InstallerRemoveFmt         = "remove %s: %w"
	InstallerListFmt           = "list installed packages in %s: %w"
	InstallerUpdateRemoveFmt   = "update %s: remove: %w"
	InstallerUpdateInstallFmt  = "update %s: install: %w"
)
