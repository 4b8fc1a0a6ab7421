// Package system looks up host facts the screens show, such as the address
// the preview server can be reached on.
package system

import (
	"context"
	"fmt"
	"net"
	"strings"
)

type NetInfo interface {
	IP(ctx context.Context) (string, error)
}

type NoopNetInfo struct{}

func (NoopNetInfo) IP(ctx context.Context) (string, error) { return "", nil }

// StaticNetInfo always reports the same address.
type StaticNetInfo string

func (s StaticNetInfo) IP(ctx context.Context) (string, error) { return string(s), nil }

// InterfaceNetInfo reports the first IPv4 address of an interface that is up
// and not a loopback.
type InterfaceNetInfo struct {
	// Name restricts the search to one interface, e.g. "wlan0".
	Name string
}

func (n InterfaceNetInfo) IP(ctx context.Context) (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if n.Name != "" && iface.Name != n.Name {
			continue
		}
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if ip := firstIPv4(addrs); ip != "" {
			return ip, nil
		}
	}
	return "", nil
}

func firstIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() {
			return ip4.String()
		}
	}
	return ""
}

// PreviewURL builds the URL of a server listening on listenAddr. A missing
// or wildcard host is replaced with the address from ni, falling back to
// 127.0.0.1.
func PreviewURL(ctx context.Context, ni NetInfo, listenAddr string) (string, error) {
	host, port, err := net.SplitHostPort(strings.TrimSpace(listenAddr))
	if err != nil {
		return "", fmt.Errorf("listen address %q: %w", listenAddr, err)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = ""
		if ni != nil {
			ip, err := ni.IP(ctx)
			if err != nil {
				return "", err
			}
			host = strings.TrimSpace(ip)
		}
		if host == "" {
			host = "127.0.0.1"
		}
	}
	return "http://" + net.JoinHostPort(host, port) + "/", nil
}
