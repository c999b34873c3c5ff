package httpapi

import (
	"fmt"
	"net"
	"strconv"
)

// Listen opens a TCP listener on addr. When the port is taken and scan is
// positive, the next scan ports are tried in order.
func Listen(addr string, scan int) (net.Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err == nil || scan <= 0 {
		return l, err
	}

	host, portStr, splitErr := net.SplitHostPort(addr)
	if splitErr != nil {
		return nil, err
	}
	start, convErr := strconv.Atoi(portStr)
	if convErr != nil || start == 0 {
		return nil, err
	}

	for port := start + 1; port <= start+scan; port++ {
		l, tryErr := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if tryErr == nil {
			return l, nil
		}
	}
	return nil, fmt.Errorf("no available port in range %d-%d: %w", start, start+scan, err)
}
