package orm

import (
	"net/url"
	"regexp"
	"strings"
)

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

// RedactDSN strips credentials from a connection string so it can be logged.
// Both URL and key=value forms are handled; sqlite paths pass through.
func RedactDSN(raw string) string {
	if raw == "" {
		return ""
	}

	if strings.Contains(raw, "://") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return "[redacted]"
		}
		if parsed.User != nil {
			username := parsed.User.Username()
			if username == "" {
				parsed.User = url.User("redacted")
			} else {
				parsed.User = url.User(username)
			}
		}
		raw = parsed.String()
	}

	return passwordPattern.ReplaceAllString(raw, "password=redacted")
}
