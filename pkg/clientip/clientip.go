package clientip

import (
	"net/http"
	"net/netip"
	"strings"
)

// forwardedHeaders are consulted in order before RemoteAddr.
var forwardedHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the first valid address from the forwarding headers, or the
// host part of RemoteAddr. The result is empty when nothing parses.
func GetIP(r *http.Request) string {
	for _, name := range forwardedHeaders {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		for part := range strings.SplitSeq(value, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	if ap, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return ap.Addr().Unmap().String()
	}
	return parseIP(r.RemoteAddr)
}

func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
