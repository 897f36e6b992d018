package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hueclip/hueclip-go/pkg/clip"
)

func TestFilterMatches(t *testing.T) {
	event := &Event{
		Kind:         KindUpdate,
		ResourceType: clip.ResourceTypeLight,
		ResourceID:   "light-1",
	}

	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{
			name:   "NilFilterMatchesAll",
			filter: nil,
			want:   true,
		},
		{
			name:   "EmptyFilterMatchesAll",
			filter: &Filter{},
			want:   true,
		},
		{
			name:   "KindMatch",
			filter: &Filter{Kinds: []Kind{KindUpdate}},
			want:   true,
		},
		{
			name:   "KindMismatch",
			filter: &Filter{Kinds: []Kind{KindDelete}},
			want:   false,
		},
		{
			name:   "KindListAnyMatch",
			filter: &Filter{Kinds: []Kind{KindDelete, KindUpdate}},
			want:   true,
		},
		{
			name:   "TypeMatch",
			filter: &Filter{ResourceTypes: []clip.ResourceType{clip.ResourceTypeLight}},
			want:   true,
		},
		{
			name:   "TypeMismatch",
			filter: &Filter{ResourceTypes: []clip.ResourceType{clip.ResourceTypeScene}},
			want:   false,
		},
		{
			name:   "IDMatch",
			filter: &Filter{ResourceIDs: []string{"light-1"}},
			want:   true,
		},
		{
			name:   "IDMismatch",
			filter: &Filter{ResourceIDs: []string{"light-2"}},
			want:   false,
		},
		{
			name: "AllDimensionsMustMatch",
			filter: &Filter{
				Kinds:         []Kind{KindUpdate},
				ResourceTypes: []clip.ResourceType{clip.ResourceTypeLight},
				ResourceIDs:   []string{"light-1"},
			},
			want: true,
		},
		{
			name: "OneDimensionMismatchFails",
			filter: &Filter{
				Kinds:         []Kind{KindUpdate},
				ResourceTypes: []clip.ResourceType{clip.ResourceTypeLight},
				ResourceIDs:   []string{"light-2"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(event))
		})
	}
}

func TestFilterNilEvent(t *testing.T) {
	assert.False(t, (&Filter{}).Matches(nil))
	var f *Filter
	assert.True(t, f.Matches(&Event{}))
}
