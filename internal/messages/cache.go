package messages

// Cache messages for the manifest cache store.
const (
	CacheDirRequired    = "cache directory is required"
	CacheInvalidKeyFmt  = "invalid cache key %q"
	CacheReadFmt        = "read cache %s: %w"
	CacheCreateDirFmt   = "create cache dir %s: %w"
	CacheCreateTempFmt  = "create cache temp file: %w"
	CacheWriteFmt       = "write cache %s: %w"
	CacheOpenLockFmt    = "open cache lock %s: %w"
	CacheLockFmt        = "lock cache %s: %w"
	CacheUnlockFmt      = "unlock cache %s: %w"
	CacheLockTimeoutFmt = "timed out waiting for cache lock after %s"
)
