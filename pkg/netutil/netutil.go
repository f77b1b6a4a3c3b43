// Package netutil provides address helpers for the network-backed stores.
package netutil

import (
	"fmt"
	"net"
	"strconv"
)

// IsValidPort returns true if port is a usable TCP port (1–65535).
func IsValidPort(port int) bool {
	return port > 0 && port <= 65535
}

// JoinHostPort formats host and port as a dial address. IPv6 hosts are
// bracketed.
func JoinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// SplitHostPort accepts either a bare host or host:port. A bare host gets
// defaultPort.
func SplitHostPort(addr string, defaultPort int) (host string, port int, err error) {
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		// No port in addr: treat the entire string as host
		return addr, defaultPort, nil
	}
	n, err := strconv.Atoi(p)
	if err != nil || !IsValidPort(n) {
		return "", 0, fmt.Errorf("invalid port %q in %q", p, addr)
	}
	return h, n, nil
}
