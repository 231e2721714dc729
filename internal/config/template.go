package config

// DefaultConfigTOML is written by `jsp init`.
const DefaultConfigTOML = `# jsp configuration.

[manifest]
# Location of the package manifest: "name,url,revision" records separated by ";".
# http(s) URLs, file:// URLs and local paths are accepted.
url = "https://packages.example.com/manifest.txt"
timeout = "10s"
retries = 2
max_bytes = 1048576

[packages]
# Installed packages live here, one git checkout per package.
# Relative paths are resolved against the project root.
dir = "Packages/jsp"

[cache]
# Set to "" to keep the manifest cache in memory only.
dir = "~/.cache/jsp"

[log]
# debug, info, warn, or error.
level = "info"

[serve]
addr = "127.0.0.1:8089"

[sync]
jobs = 4
`
