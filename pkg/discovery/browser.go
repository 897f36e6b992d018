package discovery

import (
	"context"
	"net"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// Browser provides mDNS bridge browsing.
type Browser interface {
	// Browse searches for bridges on the local network. The returned
	// channel is closed when the context is cancelled.
	Browse(ctx context.Context) (<-chan *Bridge, error)

	// FindByBridgeID searches for a specific bridge. Returns ErrNotFound
	// when the context expires first.
	FindByBridgeID(ctx context.Context, bridgeID string) (*Bridge, error)
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout is the default timeout for FindByBridgeID when the
	// caller's context has no deadline. Default: 10 seconds.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
	}
}

// MDNSBrowser implements Browser using zeroconf.
type MDNSBrowser struct {
	config BrowserConfig
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) *MDNSBrowser {
	if config.BrowseTimeout <= 0 {
		config.BrowseTimeout = BrowseTimeout
	}
	return &MDNSBrowser{config: config}
}

// Browse searches for bridges. Announcements are aggregated by instance
// name so a bridge answering on multiple interfaces is emitted once per
// address set change.
func (b *MDNSBrowser) Browse(ctx context.Context) (<-chan *Bridge, error) {
	out := make(chan *Bridge)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	opts := b.browserOptions()

	go func() {
		defer close(out)

		bridges := make(map[string]*Bridge)

		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				bridge := entryToBridge(entry)
				if bridge == nil {
					continue
				}
				if existing, seen := bridges[entry.Instance]; seen {
					existing.Addresses = mergeAddresses(existing.Addresses, bridge.Addresses)
					bridge = existing
				} else {
					bridges[entry.Instance] = bridge
				}
				select {
				case out <- bridge:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					return
				}
				delete(bridges, entry.Instance)

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		_ = zeroconf.Browse(ctx, ServiceTypeBridge, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// FindByBridgeID searches for a specific bridge by its ID.
func (b *MDNSBrowser) FindByBridgeID(ctx context.Context, bridgeID string) (*Bridge, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.config.BrowseTimeout)
		defer cancel()
	}

	results, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case bridge, ok := <-results:
			if !ok {
				return nil, ErrNotFound
			}
			if bridge.BridgeID == bridgeID {
				return bridge, nil
			}
		case <-ctx.Done():
			return nil, ErrNotFound
		}
	}
}

// browserOptions builds zeroconf client options from the config.
func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// entryToBridge converts a zeroconf entry to a Bridge. Entries without a
// valid bridgeid TXT record are not Hue bridges and yield nil.
func entryToBridge(entry *zeroconf.ServiceEntry) *Bridge {
	info, err := DecodeBridgeTXT(entry.Text)
	if err != nil {
		return nil
	}

	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	port := uint16(entry.Port)
	if port == 0 {
		port = DefaultPort
	}

	return &Bridge{
		InstanceName: entry.Instance,
		Host:         entry.HostName,
		Port:         port,
		Addresses:    addrs,
		BridgeID:     info.BridgeID,
		ModelID:      info.ModelID,
	}
}

// mergeAddresses merges new addresses into the list, deduplicated.
func mergeAddresses(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}
	for _, addr := range incoming {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}
