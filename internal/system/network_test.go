package system

import (
	"context"
	"errors"
	"net"
	"testing"
)

type failingNetInfo struct{}

func (failingNetInfo) IP(ctx context.Context) (string, error) { return "", errors.New("boom") }

func TestPreviewURL(t *testing.T) {
	tests := []struct {
		addr string
		ni   NetInfo
		want string
	}{
		{":8080", StaticNetInfo("192.168.1.20"), "http://192.168.1.20:8080/"},
		{":8080", NoopNetInfo{}, "http://127.0.0.1:8080/"},
		{":8080", nil, "http://127.0.0.1:8080/"},
		{"0.0.0.0:80", StaticNetInfo("10.0.0.2"), "http://10.0.0.2:80/"},
		{"localhost:9000", StaticNetInfo("10.0.0.2"), "http://localhost:9000/"},
		{"[::]:8080", StaticNetInfo("10.0.0.3"), "http://10.0.0.3:8080/"},
		{"[fe80::1]:8080", nil, "http://[fe80::1]:8080/"},
	}
	for _, tt := range tests {
		got, err := PreviewURL(context.Background(), tt.ni, tt.addr)
		if err != nil {
			t.Errorf("PreviewURL(%q): %v", tt.addr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PreviewURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}

	if _, err := PreviewURL(context.Background(), nil, "no-port"); err == nil {
		t.Errorf("address without port accepted")
	}
	if _, err := PreviewURL(context.Background(), failingNetInfo{}, ":8080"); err == nil {
		t.Errorf("net info error swallowed")
	}
}

func TestFirstIPv4(t *testing.T) {
	addrs := []net.Addr{
		&net.IPNet{IP: net.ParseIP("fe80::1")},
		&net.IPNet{IP: net.ParseIP("127.0.0.1")},
		&net.IPAddr{IP: net.ParseIP("192.168.4.1")},
	}
	if got := firstIPv4(addrs); got != "192.168.4.1" {
		t.Errorf("firstIPv4 = %q", got)
	}
	if got := firstIPv4(nil); got != "" {
		t.Errorf("firstIPv4(nil) = %q", got)
	}
}

func TestInterfaceNetInfoCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Hosts without interfaces return "" and no error; the rest see ctx.Err.
	if ip, err := (InterfaceNetInfo{}).IP(ctx); err == nil && ip != "" {
		t.Errorf("cancelled lookup returned %q", ip)
	}
}
