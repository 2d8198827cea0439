package availability

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/logging"
)

const (
	// ServiceType is the mDNS service type advertised by availability servers
	ServiceType = "_tablekit-avail._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultBrowseTimeout is the default time spent collecting answers
	DefaultBrowseTimeout = 3 * time.Second
)

// Endpoint is an availability server found on the local network.
type Endpoint struct {
	Instance string
	Host     string
	IP       string
	Port     int
	Path     string
}

// String returns a human-readable description of the endpoint
func (e *Endpoint) String() string {
	return fmt.Sprintf("%s (%s) at %s", e.Instance, e.Host, e.URL())
}

// URL returns the WebSocket URL for the endpoint
func (e *Endpoint) URL() string {
	path := e.Path
	if path == "" {
		path = Path
	}
	return "ws://" + net.JoinHostPort(e.IP, strconv.Itoa(e.Port)) + path
}

// Advertisement is a running mDNS announcement.
type Advertisement struct {
	server *zeroconf.Server
}

// Advertise announces an availability server listening on port.
func Advertise(instance string, port int) (*Advertisement, error) {
	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, []string{"path=" + Path}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("Advertising availability server",
		zap.String("instance", instance),
		zap.Int("port", port),
	)
	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the announcement.
func (a *Advertisement) Shutdown() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}

// Browser discovers availability servers via mDNS.
type Browser struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration
}

// NewBrowser creates a browser with default settings
func NewBrowser() *Browser {
	return &Browser{Timeout: DefaultBrowseTimeout}
}

// Browse collects every endpoint that answers before the timeout or ctx ends.
func (b *Browser) Browse(ctx context.Context) ([]*Endpoint, error) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowseTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu        sync.Mutex
		endpoints []*Endpoint
		seen      = make(map[string]bool)
		done      = make(chan struct{})
	)
	go func() {
		defer close(done)
		for entry := range entries {
			ep := parseServiceEntry(entry)
			if ep == nil {
				continue
			}
			mu.Lock()
			if !seen[ep.URL()] {
				seen[ep.URL()] = true
				endpoints = append(endpoints, ep)
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	// The resolver closes entries once ctx ends.
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	mu.Lock()
	defer mu.Unlock()
	logging.Debug("Browse finished", zap.Int("endpoints", len(endpoints)))
	return append([]*Endpoint(nil), endpoints...), nil
}

// parseServiceEntry converts a zeroconf service entry to an Endpoint.
// Returns nil if the entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Endpoint {
	if entry == nil || entry.Port == 0 {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	ep := &Endpoint{
		Instance: entry.Instance,
		Host:     strings.TrimSuffix(entry.HostName, "."),
		IP:       ip,
		Port:     entry.Port,
	}
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		if key == "path" {
			ep.Path = value
		}
	}
	return ep
}
