package messages

// Fetch messages for manifest downloads.
const (
	FetchLocationRequired     = "manifest location is required"
	FetchInvalidLocationFmt   = "invalid manifest location %q: %w"
	FetchUnsupportedSchemeFmt = "unsupported manifest scheme %q in %s (expected http, https, or file)"
	FetchCreateRequestFmt     = "create manifest request: %w"
	FetchFailedFmt            = "fetch manifest %s: %w"
	FetchTimeoutFmt           = "fetch manifest %s: request timed out: %w"
	FetchUnexpectedStatusFmt  = "fetch manifest %s: unexpected status %s"
	FetchTooLargeFmt          = "fetch manifest %s: response exceeds limit of %d bytes"
	FetchReadFileFmt          = "read manifest %s: %w"
)
