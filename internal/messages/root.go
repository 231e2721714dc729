package messages

// Root messages for project root discovery.
const (
	RootStartPathRequired   = "start path is required"
	RootResolvePathFmt      = "failed to resolve path %s: %w"
	RootCheckPathFmt        = "failed to check %s: %w"
	RootPathNotDirFmt       = "%s exists but is not a directory"
	RootPathNotDirOrFileFmt = "%s exists but is neither a directory nor a regular file"
)
