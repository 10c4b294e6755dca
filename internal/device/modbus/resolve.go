// internal/device/modbus/resolve.go
package modbus

import (
	"errors"
	"net"
)

func isResolveError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var addrErr *net.AddrError
	return errors.As(err, &addrErr)
}
