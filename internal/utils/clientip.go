// Package utils holds small request helpers shared by the HTTP middlewares.
package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// proxyHeaders are consulted in order when the server sits behind a
// trusted reverse proxy.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// ClientIP returns the ip of the client that sent r. With trustProxy the
// proxy headers win over the connection address; X-Forwarded-For
// contributes its left-most entry.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, h := range proxyHeaders {
			v := r.Header.Get(h)
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = v[:i]
			}
			if ip := stripPort(strings.TrimSpace(v)); ip != "" {
				return ip
			}
		}
	}
	return stripPort(r.RemoteAddr)
}

func stripPort(s string) string {
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// IPMatcher tells whether an ip belongs to a list of addresses and CIDRs.
type IPMatcher struct {
	prefixes []netip.Prefix
}

// NewIPMatcher parses list, skipping entries that are neither an ip nor a
// CIDR. A bare ip matches only itself.
func NewIPMatcher(list []string) *IPMatcher {
	m := &IPMatcher{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if p, err := netip.ParsePrefix(s); err == nil {
			m.prefixes = append(m.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(s); err == nil {
			m.prefixes = append(m.prefixes, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return m
}

func (m *IPMatcher) IsEmpty() bool { return len(m.prefixes) == 0 }

// Allow reports whether ip is covered by the list. IPv4-mapped IPv6
// addresses match their IPv4 entries.
func (m *IPMatcher) Allow(ip string) bool {
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range m.prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}
