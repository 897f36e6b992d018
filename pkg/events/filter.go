package events

import "github.com/hueclip/hueclip-go/pkg/clip"

// Filter restricts which events reach a subscriber's handler.
//
// An absent/empty dimension imposes no constraint. Present dimensions
// combine with AND; membership within one dimension is OR. A nil *Filter
// matches every event.
type Filter struct {
	// Kinds restricts by envelope kind.
	Kinds []Kind

	// ResourceTypes restricts by resource type.
	ResourceTypes []clip.ResourceType

	// ResourceIDs restricts by resource UUID.
	ResourceIDs []string
}

// Matches reports whether the event satisfies every non-empty dimension.
// It is a pure function with no side effects.
func (f *Filter) Matches(event *Event) bool {
	if f == nil {
		return true
	}
	if event == nil {
		return false
	}

	if len(f.Kinds) > 0 && !containsKind(f.Kinds, event.Kind) {
		return false
	}
	if len(f.ResourceTypes) > 0 && !containsType(f.ResourceTypes, event.ResourceType) {
		return false
	}
	if len(f.ResourceIDs) > 0 && !containsString(f.ResourceIDs, event.ResourceID) {
		return false
	}
	return true
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, v := range kinds {
		if v == k {
			return true
		}
	}
	return false
}

func containsType(types []clip.ResourceType, t clip.ResourceType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
