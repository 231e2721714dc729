package messages

// Server messages for the status server.
const (
	ServerRefreshed = "manifest refreshed"
)
