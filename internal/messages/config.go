package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys:\n%s"
	ConfigTemplateSource      = "default config"
	ConfigExpandPathFmt       = "failed to expand path %s: %w"

	ConfigManifestURLRequiredFmt     = "%s: manifest.url is required (or set %s)"
	ConfigManifestSchemeInvalidFmt   = "%s: manifest.url scheme %q is not supported (use http, https, file, or a path)"
	ConfigManifestTimeoutInvalidFmt  = "%s: manifest.timeout %q must be a positive duration such as \"10s\""
	ConfigManifestRetriesInvalidFmt  = "%s: manifest.retries must not be negative"
	ConfigManifestMaxBytesInvalidFmt = "%s: manifest.max_bytes must not be negative"
	ConfigLogLevelInvalidFmt         = "%s: log.level %q must be one of debug, info, warn, error"
	ConfigSyncJobsInvalidFmt         = "%s: sync.jobs must not be negative"
)
