package api

import (
	"net"
	"net/url"
	"strings"
)

// originPolicy decides which browser origins may use the method channel.
// Requests without an Origin header come from local programs, not web pages.
type originPolicy struct {
	allowed map[string]bool
}

func newOriginPolicy(origins []string) originPolicy {
	p := originPolicy{allowed: make(map[string]bool, len(origins))}
	for _, o := range origins {
		if o = normalizeOrigin(o); o != "" {
			p.allowed[o] = true
		}
	}
	return p
}

func normalizeOrigin(o string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
}

// allows reports whether origin may call the channel: no origin, a loopback
// http(s) page, or one of the configured origins.
func (p originPolicy) allows(origin string) bool {
	if origin == "" {
		return true
	}
	if p.allowed[normalizeOrigin(origin)] {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
