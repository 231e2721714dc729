package messages

// UI messages for interactive prompts.
const (
	UIRequiresTerminal = "interactive prompts require an interactive terminal"
	UICancelled        = "cancelled"
)
