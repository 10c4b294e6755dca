// internal/device/udp/resolve.go
package udp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Resolver turns a hostname or IP literal into an address.
// It is called once per activation attempt and never retried.
type Resolver interface {
	Resolve(ctx context.Context, host string) (net.IP, error)
}

// NetResolver resolves through the system resolver.
// IP literals are parsed without a lookup. IPv4 results are preferred.
type NetResolver struct {
	// Resolver overrides net.DefaultResolver when set.
	Resolver *net.Resolver
}

func (r NetResolver) Resolve(ctx context.Context, host string) (net.IP, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, errors.New("udp resolve: empty host")
	}

	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}

	res := r.Resolver
	if res == nil {
		res = net.DefaultResolver
	}

	addrs, err := res.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("udp resolve: %w", err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("udp resolve: no addresses for %q", host)
	}

	for _, a := range addrs {
		if v4 := a.IP.To4(); v4 != nil {
			return v4, nil
		}
	}
	return addrs[0].IP, nil
}
