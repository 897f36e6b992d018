package discovery

import (
	"errors"
	"time"
)

// mDNS service constants.
const (
	// ServiceTypeBridge is the service type Hue bridges advertise.
	ServiceTypeBridge = "_hue._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the bridge HTTPS port.
	DefaultPort = 443

	// BrowseTimeout is the default timeout for browse operations.
	BrowseTimeout = 10 * time.Second
)

// TXT record keys Hue bridges publish.
const (
	// TXTKeyBridgeID is the 16 hex char bridge identifier.
	TXTKeyBridgeID = "bridgeid"

	// TXTKeyModelID is the bridge hardware model (e.g. "BSB002").
	TXTKeyModelID = "modelid"
)

// BridgeIDLength is the length of a bridge ID (16 hex chars = 64 bits).
const BridgeIDLength = 16

// Discovery errors.
var (
	ErrNotFound         = errors.New("bridge not found")
	ErrInvalidTXTRecord = errors.New("invalid TXT record format")
	ErrMissingBridgeID  = errors.New("missing bridgeid TXT record")
)

// Bridge is a Hue bridge found via mDNS.
type Bridge struct {
	// InstanceName is the mDNS instance name (e.g. "Philips Hue - A1B2C3").
	InstanceName string

	// Host is the hostname (e.g. "ecb5fa123456.local.").
	Host string

	// Port is the HTTPS port.
	Port uint16

	// Addresses contains resolved IP addresses.
	Addresses []string

	// BridgeID is the bridge identifier (from TXT "bridgeid", lowercased).
	BridgeID string

	// ModelID is the bridge hardware model (from TXT "modelid").
	ModelID string
}

// Addr returns the best address to dial: the first resolved address
// (IPv4 sorts first), falling back to the hostname.
func (b *Bridge) Addr() string {
	if len(b.Addresses) > 0 {
		return b.Addresses[0]
	}
	return b.Host
}
