package messages

// Registry messages for manifest parsing and action resolution.
const (
	// RegistryFormatError is the text of the malformed-manifest sentinel.
	RegistryFormatError          = "malformed manifest"
	RegistryFormatErrorFmt       = "malformed manifest record %d (%q): %s"
	RegistryFieldCountFmt        = "expected %d fields (name,url,revision), got %d"
	RegistryEmptyName            = "package name is empty"
	RegistryFieldHasDelimiterFmt = "manifest field %q contains a delimiter (';' or ',') and cannot be encoded"
	RegistryUnknownActionFmt     = "unknown action %q (expected install, update, remove, or none)"
)
