package pkg

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

const forwardedForHeader = "X-Forwarded-For"

// TrustedProxies decides when a forwarding header can replace the peer address.
// The zero value trusts nobody.
type TrustedProxies struct {
	prefixes []netip.Prefix
	header   string
}

// NewTrustedProxies parses the given CIDRs (single addresses are accepted too).
// An empty header defaults to X-Forwarded-For.
func NewTrustedProxies(cidrs []string, header string) (*TrustedProxies, error) {
	tp := &TrustedProxies{header: http.CanonicalHeaderKey(strings.TrimSpace(header))}
	if tp.header == "" {
		tp.header = forwardedForHeader
	}

	for _, c := range cidrs {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !strings.Contains(c, "/") {
			addr, err := netip.ParseAddr(c)
			if err != nil {
				return nil, fmt.Errorf("parse trusted proxy %q: %w", c, err)
			}
			tp.prefixes = append(tp.prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
			continue
		}
		prefix, err := netip.ParsePrefix(c)
		if err != nil {
			return nil, fmt.Errorf("parse trusted proxy %q: %w", c, err)
		}
		tp.prefixes = append(tp.prefixes, prefix.Masked())
	}

	return tp, nil
}

func (tp *TrustedProxies) trusts(addr netip.Addr) bool {
	if tp == nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range tp.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the address used to identify the client of r.
// The peer address is used unless it belongs to a trusted proxy, in which case the
// configured header is consulted. For X-Forwarded-For the right-most hop that is not
// a trusted proxy wins, so clients cannot spoof it by prepending entries.
func ClientIP(r *http.Request, proxies *TrustedProxies) string {
	peer := remoteHost(r.RemoteAddr)
	peerAddr, err := netip.ParseAddr(peer)
	if err != nil || !proxies.trusts(peerAddr) {
		return peer
	}

	values := r.Header.Values(proxies.header)
	if len(values) == 0 {
		return peer
	}

	if proxies.header != forwardedForHeader {
		if addr, err := netip.ParseAddr(strings.TrimSpace(values[len(values)-1])); err == nil {
			return addr.Unmap().String()
		}
		return peer
	}

	hops := strings.Split(strings.Join(values, ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(remoteHost(strings.TrimSpace(hops[i])))
		if err != nil {
			// garbage in the chain, stop at the last hop we could verify
			return peer
		}
		if !proxies.trusts(addr) {
			return addr.Unmap().String()
		}
		peer = addr.Unmap().String()
	}

	return peer
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return strings.Trim(remoteAddr, "[]")
	}
	return host
}
