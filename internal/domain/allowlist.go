package domain

import (
	"net/url"
	"strings"
)

// HostAllowlist restricts outbound proxy fetches to known upstream
// hosts. It fails closed: anything that does not parse as an http(s)
// URL with an allowlisted hostname is rejected.
type HostAllowlist struct {
	hosts []string
}

func NewHostAllowlist(hosts []string) HostAllowlist {
	cleaned := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			cleaned = append(cleaned, h)
		}
	}
	return HostAllowlist{hosts: cleaned}
}

// Allows reports whether rawURL points at an allowlisted host or a
// dot-suffix subdomain of one.
func (a HostAllowlist) Allows(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	hostname := strings.ToLower(parsed.Hostname())
	if hostname == "" {
		return false
	}
	for _, allowed := range a.hosts {
		if hostname == allowed || strings.HasSuffix(hostname, "."+allowed) {
			return true
		}
	}
	return false
}
