// Package bridge talks to the Hue bridge's CLIP v2 REST interface.
//
// The Client performs read-only resource fetches used to seed the state
// cache. The Config and Store types cover the surrounding plumbing: YAML
// client configuration, and a JSON file remembering the last known bridge
// so startup can skip mDNS discovery.
package bridge
