// Package discovery finds Hue bridges on the local network via mDNS.
//
// Bridges advertise the "_hue._tcp" service with their bridge ID and model
// in TXT records. The browser aggregates announcements by instance name,
// since the same bridge answers on every interface, and emits one Bridge
// per physical device.
package discovery
