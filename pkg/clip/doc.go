// Package clip defines the CLIP v2 resource model used by the Hue bridge.
//
// The bridge exposes every addressable thing (lights, rooms, scenes, grouped
// lights, sensors) as a resource with a UUID, a type, and a set of state
// fragments. The same fragment types appear in two places:
//
//   - Full snapshots returned by the REST API (GET /clip/v2/resource/<type>)
//   - Partial patches carried on the server-push event stream
//
// A snapshot carries every fragment; a patch carries only the fragments that
// changed. Fields are therefore pointers so that "absent" and "zero" stay
// distinguishable when decoding patches.
package clip
