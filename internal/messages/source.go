package messages

// Source messages for manifest loading.
const (
	SourceCollaboratorsRequired = "manifest source requires a fetcher and a cache store"
	SourceReadCacheFmt          = "read cached manifest: %w"
	SourceWriteCacheFmt         = "store fetched manifest: %w"
	SourceRejectedFmt           = "fetched manifest rejected, cache unchanged: %w"
)
