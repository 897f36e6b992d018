package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hueclip/hueclip-go/pkg/clip"
	"github.com/hueclip/hueclip-go/pkg/events"
	"github.com/hueclip/hueclip-go/pkg/log"
)

// Manager is the in-memory cache of last known bridge state.
type Manager struct {
	logger log.Logger

	mu            sync.RWMutex
	lights        map[string]*clip.Light
	groupedLights map[string]*clip.GroupedLight
	rooms         map[string]*clip.Room
	scenes        map[string]*clip.Scene
	lastUpdated   map[string]time.Time
	lastUpdate    time.Time
	initialized   bool
}

// NewManager creates an empty, uninitialized cache. Pass a nil logger to
// disable logging.
func NewManager(logger log.Logger) *Manager {
	return &Manager{
		logger:        log.OrNoop(logger),
		lights:        make(map[string]*clip.Light),
		groupedLights: make(map[string]*clip.GroupedLight),
		rooms:         make(map[string]*clip.Room),
		scenes:        make(map[string]*clip.Scene),
		lastUpdated:   make(map[string]time.Time),
	}
}

var _ events.Handler = (*Manager)(nil)

// SetLights upserts full light snapshots from a REST fetch.
func (m *Manager) SetLights(lights []clip.Light) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for i := range lights {
		m.lights[lights[i].ID] = lights[i].Clone()
		m.lastUpdated[lights[i].ID] = now
	}
	m.lastUpdate = now
}

// SetGroupedLights upserts full grouped light snapshots from a REST fetch.
func (m *Manager) SetGroupedLights(groups []clip.GroupedLight) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for i := range groups {
		m.groupedLights[groups[i].ID] = groups[i].Clone()
		m.lastUpdated[groups[i].ID] = now
	}
	m.lastUpdate = now
}

// SetRooms upserts full room snapshots from a REST fetch.
func (m *Manager) SetRooms(rooms []clip.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for i := range rooms {
		m.rooms[rooms[i].ID] = rooms[i].Clone()
		m.lastUpdated[rooms[i].ID] = now
	}
	m.lastUpdate = now
}

// SetScenes upserts full scene snapshots from a REST fetch.
func (m *Manager) SetScenes(scenes []clip.Scene) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for i := range scenes {
		m.scenes[scenes[i].ID] = scenes[i].Clone()
		m.lastUpdated[scenes[i].ID] = now
	}
	m.lastUpdate = now
}

// HandleEvent applies one stream event to the cache. Resource types the
// cache does not track are ignored. Never returns an error; application
// problems are logged and skipped so the bus keeps dispatching.
func (m *Manager) HandleEvent(_ context.Context, event *events.Event) error {
	if event == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch event.Kind {
	case events.KindDelete:
		m.applyDelete(event)
	case events.KindUpdate, events.KindAdd:
		m.applyChange(event)
	case events.KindError:
		m.logger.Log(log.ErrorEvent(log.LayerCache,
			fmt.Sprintf("bridge error event for %s %s", event.ResourceType, event.ResourceID), nil))
	}
	return nil
}

// applyDelete removes the resource. Deleting an absent resource is a no-op.
func (m *Manager) applyDelete(event *events.Event) {
	switch event.ResourceType {
	case clip.ResourceTypeLight:
		delete(m.lights, event.ResourceID)
	case clip.ResourceTypeGroupedLight:
		delete(m.groupedLights, event.ResourceID)
	case clip.ResourceTypeRoom:
		delete(m.rooms, event.ResourceID)
	case clip.ResourceTypeScene:
		delete(m.scenes, event.ResourceID)
	default:
		return
	}
	delete(m.lastUpdated, event.ResourceID)
	m.lastUpdate = time.Now()
}

// applyChange patches an existing resource with the fields present in the
// change. A change for a resource the cache has never seen is dropped
// regardless of kind: a partial delta is not enough to fabricate a full
// snapshot, so entries only ever come from REST seeding.
func (m *Manager) applyChange(event *events.Event) {
	change := event.Payload
	switch event.ResourceType {
	case clip.ResourceTypeLight:
		light, ok := m.lights[event.ResourceID]
		if !ok {
			m.logMiss(event)
			return
		}
		if change.On != nil {
			light.On = change.On.Clone()
		}
		if change.Dimming != nil {
			light.Dimming = patchDimming(light.Dimming, change.Dimming)
		}
		if change.Color != nil {
			light.Color = patchColor(light.Color, change.Color)
		}
		if change.Metadata != nil {
			light.Metadata = change.Metadata.Clone()
		}

	case clip.ResourceTypeGroupedLight:
		group, ok := m.groupedLights[event.ResourceID]
		if !ok {
			m.logMiss(event)
			return
		}
		if change.On != nil {
			group.On = change.On.Clone()
		}
		if change.Dimming != nil {
			group.Dimming = patchDimming(group.Dimming, change.Dimming)
		}

	case clip.ResourceTypeRoom:
		room, ok := m.rooms[event.ResourceID]
		if !ok {
			m.logMiss(event)
			return
		}
		if change.Metadata != nil {
			room.Metadata = change.Metadata.Clone()
		}
		if change.Children != nil {
			room.Children = append([]clip.ResourceIdentifier(nil), change.Children...)
		}

	case clip.ResourceTypeScene:
		scene, ok := m.scenes[event.ResourceID]
		if !ok {
			m.logMiss(event)
			return
		}
		if change.Metadata != nil {
			scene.Metadata = change.Metadata.Clone()
		}
		if change.Status != nil {
			status := *change.Status
			scene.Status = &status
		}

	default:
		return
	}
	// The per-resource stamp carries the bridge's clock, not ours.
	m.lastUpdated[event.ResourceID] = event.Timestamp
	m.lastUpdate = time.Now()
}

// patchDimming overlays only the fields present in the incoming fragment.
// Brightness is always carried by the fragment; MinDimLevel survives when
// the delta omits it.
func patchDimming(current, incoming *clip.Dimming) *clip.Dimming {
	patched := incoming.Clone()
	if patched.MinDimLevel == nil && current != nil {
		patched.MinDimLevel = current.Clone().MinDimLevel
	}
	return patched
}

// patchColor overlays the incoming xy while preserving the cached gamut,
// which the bridge omits from deltas.
func patchColor(current, incoming *clip.Color) *clip.Color {
	patched := incoming.Clone()
	if current != nil {
		if patched.Gamut == nil {
			patched.Gamut = current.Clone().Gamut
		}
		if patched.GamutType == "" {
			patched.GamutType = current.GamutType
		}
	}
	return patched
}

func (m *Manager) logMiss(event *events.Event) {
	m.logger.Log(log.ErrorEvent(log.LayerCache,
		fmt.Sprintf("%s for unknown %s %s dropped", event.Kind, event.ResourceType, event.ResourceID), nil))
}

// Light returns a copy of the cached light, if present.
func (m *Manager) Light(id string) (*clip.Light, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	light, ok := m.lights[id]
	if !ok {
		return nil, false
	}
	return light.Clone(), true
}

// Lights returns copies of all cached lights.
func (m *Manager) Lights() []clip.Light {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]clip.Light, 0, len(m.lights))
	for _, light := range m.lights {
		out = append(out, *light.Clone())
	}
	return out
}

// GroupedLight returns a copy of the cached grouped light, if present.
func (m *Manager) GroupedLight(id string) (*clip.GroupedLight, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	group, ok := m.groupedLights[id]
	if !ok {
		return nil, false
	}
	return group.Clone(), true
}

// GroupedLights returns copies of all cached grouped lights.
func (m *Manager) GroupedLights() []clip.GroupedLight {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]clip.GroupedLight, 0, len(m.groupedLights))
	for _, group := range m.groupedLights {
		out = append(out, *group.Clone())
	}
	return out
}

// Room returns a copy of the cached room, if present.
func (m *Manager) Room(id string) (*clip.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, false
	}
	return room.Clone(), true
}

// Rooms returns copies of all cached rooms.
func (m *Manager) Rooms() []clip.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]clip.Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		out = append(out, *room.Clone())
	}
	return out
}

// Scene returns a copy of the cached scene, if present.
func (m *Manager) Scene(id string) (*clip.Scene, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	scene, ok := m.scenes[id]
	if !ok {
		return nil, false
	}
	return scene.Clone(), true
}

// Scenes returns copies of all cached scenes.
func (m *Manager) Scenes() []clip.Scene {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]clip.Scene, 0, len(m.scenes))
	for _, scene := range m.scenes {
		out = append(out, *scene.Clone())
	}
	return out
}

// Counts returns the number of cached resources per type, keyed by
// resource type name.
func (m *Manager) Counts() map[clip.ResourceType]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[clip.ResourceType]int{
		clip.ResourceTypeLight:        len(m.lights),
		clip.ResourceTypeGroupedLight: len(m.groupedLights),
		clip.ResourceTypeRoom:         len(m.rooms),
		clip.ResourceTypeScene:        len(m.scenes),
	}
}

// Clear drops all cached state and resets the initialized flag.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lights = make(map[string]*clip.Light)
	m.groupedLights = make(map[string]*clip.GroupedLight)
	m.rooms = make(map[string]*clip.Room)
	m.scenes = make(map[string]*clip.Scene)
	m.lastUpdated = make(map[string]time.Time)
	m.lastUpdate = time.Time{}
	m.initialized = false
	m.logger.Log(log.StateEvent(log.StateEntityCache, "initialized", "cleared", ""))
}

// MarkInitialized flags the cache as fully seeded.
func (m *Manager) MarkInitialized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initialized = true
	m.logger.Log(log.StateEvent(log.StateEntityCache, "empty", "initialized", ""))
}

// IsInitialized reports whether the cache was fully seeded.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// LastUpdate returns the time of the most recent cache mutation, zero when
// nothing was ever applied.
func (m *Manager) LastUpdate() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastUpdate
}

// LastUpdated returns when a single resource last changed: the seed time for
// REST snapshots, the envelope creation time for stream patches. The second
// return is false when the resource is not cached.
func (m *Manager) LastUpdated(id string) (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ts, ok := m.lastUpdated[id]
	return ts, ok
}
