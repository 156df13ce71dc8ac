package system

import (
	"net"
	"os"
)

// GetHostname names the machine running the board. It falls back to the
// first interface address, then "unknown".
func GetHostname() string {
	if hostname, err := os.Hostname(); err == nil && len(hostname) > 0 {
		return hostname
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil || len(addrs) == 0 {
		return "unknown"
	}

	return addrs[0].String()
}
