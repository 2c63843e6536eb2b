package cmd

import (
	"log/slog"
	"net"
	"os"
)

// wildcardHost asks for the machine's own address instead of binding every interface.
const wildcardHost = "0.0.0.0"

// resolveHost maps the wildcard host to this machine's IPv4 address, falling back
// to the wildcard itself when the hostname cannot be resolved.
func resolveHost(host string) string {
	return resolveHostWith(host, os.Hostname, net.LookupIP)
}

func resolveHostWith(host string, hostname func() (string, error), lookup func(string) ([]net.IP, error)) string {
	if host != wildcardHost {
		return host
	}

	name, err := hostname()
	if err != nil {
		slog.Debug("Failed to read hostname", "error", err)
		return wildcardHost
	}
	ips, err := lookup(name)
	if err != nil {
		slog.Debug("Failed to resolve hostname", "hostname", name, "error", err)
		return wildcardHost
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String()
		}
	}
	return wildcardHost
}
