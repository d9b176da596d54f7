package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remote: "10.0.0.5:4242", want: "10.0.0.5"},
		{name: "ipv6 remote addr", remote: "[::1]:4242", want: "::1"},
		{name: "headers ignored without trust", remote: "10.0.0.5:1", headers: map[string]string{"X-Forwarded-For": "1.2.3.4"}, want: "10.0.0.5"},
		{name: "cloudflare header first", remote: "10.0.0.5:1", trustProxy: true,
			headers: map[string]string{"CF-Connecting-IP": "9.9.9.9", "X-Forwarded-For": "1.2.3.4"}, want: "9.9.9.9"},
		{name: "left-most forwarded", remote: "10.0.0.5:1", trustProxy: true,
			headers: map[string]string{"X-Forwarded-For": " 1.2.3.4 , 5.6.7.8"}, want: "1.2.3.4"},
		{name: "real ip", remote: "10.0.0.5:1", trustProxy: true,
			headers: map[string]string{"X-Real-IP": "4.4.4.4"}, want: "4.4.4.4"},
		{name: "no headers behind proxy", remote: "10.0.0.5:1", trustProxy: true, want: "10.0.0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"127.0.0.1", " 10.1.0.0/16 ", "fd00::/8", "not-an-ip", ""})

	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"127.0.0.2", false},
		{"10.1.200.3", true},
		{"10.2.0.1", false},
		{"fd12::1", true},
		{"::ffff:10.1.0.9", true},
		{"garbage", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if m.IsEmpty() {
		t.Error("matcher with entries reported empty")
	}
	if !NewIPMatcher([]string{"nope", " "}).IsEmpty() {
		t.Error("matcher without valid entries not empty")
	}
}
