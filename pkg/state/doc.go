// Package state caches the last known bridge resource state.
//
// The Manager holds per-type maps of full resource snapshots for the four
// resource types the client tracks: lights, grouped lights, rooms and
// scenes. It is seeded from REST fetches and kept current by applying
// events from the stream pipeline; it implements events.Handler so it can
// subscribe to the bus directly.
//
// Event application is deliberately conservative: update and add events
// patch only the fields present in the change, delete events are idempotent,
// and a change for a resource the cache has never seen is dropped rather
// than fabricated from a partial delta. Each cached resource carries a
// last-changed timestamp, taken from the envelope's creation time for stream
// patches. All reads return deep copies, so callers can hold results across
// further updates.
package state
