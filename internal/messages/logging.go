package messages

// Logging messages.
const (
	LoggingInvalidLevelFmt = "invalid log level %q: %w"
)
