package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jacksparrot/jsp/internal/messages"
)

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(source string) error {
	if strings.TrimSpace(c.Manifest.URL) == "" {
		return fmt.Errorf(messages.ConfigManifestURLRequiredFmt, source, EnvManifestURL)
	}
	if u, err := url.Parse(c.Manifest.URL); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		switch u.Scheme {
		case "http", "https", "file":
		default:
			return fmt.Errorf(messages.ConfigManifestSchemeInvalidFmt, source, u.Scheme)
		}
	}
	if c.Manifest.Timeout != "" {
		d, err := time.ParseDuration(c.Manifest.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf(messages.ConfigManifestTimeoutInvalidFmt, source, c.Manifest.Timeout)
		}
	}
	if c.Manifest.Retries != nil && *c.Manifest.Retries < 0 {
		return fmt.Errorf(messages.ConfigManifestRetriesInvalidFmt, source)
	}
	if c.Manifest.MaxBytes < 0 {
		return fmt.Errorf(messages.ConfigManifestMaxBytesInvalidFmt, source)
	}
	if _, ok := validLogLevels[c.Log.Level]; !ok {
		return fmt.Errorf(messages.ConfigLogLevelInvalidFmt, source, c.Log.Level)
	}
	if c.Sync.Jobs < 0 {
		return fmt.Errorf(messages.ConfigSyncJobsInvalidFmt, source)
	}
	return nil
}
