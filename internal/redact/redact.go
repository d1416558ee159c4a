// Package redact decides, at ingestion time, how much of a browser tab
// observation may be kept. Hosts on the allowlist keep raw URL and title;
// everything else is reduced to a host-level URL and a fixed title marker.
package redact

import (
	"net/url"
	"strings"
)

// TitleMarker replaces titles of disallowed tabs.
const TitleMarker = "[REDACTED]"

// Tab is the redaction outcome for one observation.
type Tab struct {
	Allowed       bool
	URL           *string
	Title         *string
	URLRedacted   *string
	TitleRedacted *string
}

// ParseAllowlist parses a comma-separated list of hosts/domains.
// Entries are trimmed and lowercased; empty entries are dropped.
func ParseAllowlist(patterns string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, part := range strings.Split(patterns, ",") {
		p := strings.ToLower(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		out[p] = struct{}{}
	}
	return out
}

// hostMatches reports whether host equals an allowlisted entry or is a
// subdomain of one.
func hostMatches(host string, allow map[string]struct{}) bool {
	host = strings.Trim(strings.ToLower(host), ".")
	for pat := range allow {
		pat = strings.Trim(pat, ".")
		if host == pat || strings.HasSuffix(host, "."+pat) {
			return true
		}
	}
	return false
}

// Hostname extracts the lowercased hostname of a URL, or "" if it cannot
// be parsed.
func Hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// RedactTab applies the allowlist to one raw (url, title) pair.
// Disallowed tabs lose their raw fields entirely; the redacted URL keeps
// scheme and host as weak evidence.
func RedactTab(rawURL, title *string, allow map[string]struct{}) Tab {
	if rawURL == nil || *rawURL == "" {
		return Tab{Allowed: false}
	}

	parsed, err := url.Parse(*rawURL)
	var host, scheme string
	if err == nil {
		host = strings.ToLower(parsed.Hostname())
		scheme = parsed.Scheme
	}
	allowed := host != "" && hostMatches(host, allow)

	if allowed {
		return Tab{
			Allowed:       true,
			URL:           rawURL,
			Title:         title,
			URLRedacted:   rawURL,
			TitleRedacted: title,
		}
	}

	out := Tab{Allowed: false}
	if host != "" {
		if scheme == "" {
			scheme = "https"
		}
		red := scheme + "://" + host + "/…"
		out.URLRedacted = &red
	}
	if title != nil && *title != "" {
		marker := TitleMarker
		out.TitleRedacted = &marker
	}
	return out
}
