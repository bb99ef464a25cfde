// Package validate holds the field checks applied at the intake boundary.
package validate

import (
	"net/url"
	"regexp"
	"strings"
)

// Simple email pattern: something@something.something, no whitespace.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NonEmpty reports whether s has content after trimming.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Email reports whether s looks like an email address.
func Email(s string) bool {
	if !NonEmpty(s) {
		return false
	}

	return emailRe.MatchString(s)
}

// GithubURL reports whether s points at github.com (scheme optional).
func GithubURL(s string) bool {
	host := hostname(s)

	return host == "github.com" || strings.HasSuffix(host, ".github.com")
}

// VercelURL reports whether s points at a vercel.app deployment.
func VercelURL(s string) bool {
	return strings.HasSuffix(hostname(s), ".vercel.app")
}

func hostname(s string) string {
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return ""
	}

	return u.Hostname()
}
