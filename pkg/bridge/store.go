package bridge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StoreVersion is the current version of the saved-bridge file format.
const StoreVersion = 1

// SavedBridge remembers the last bridge the client talked to, so startup
// can skip mDNS discovery when the address still works.
type SavedBridge struct {
	// Version is the file format version.
	Version int `json:"version"`

	// SavedAt is when the record was last saved.
	SavedAt time.Time `json:"saved_at"`

	// BridgeID is the bridge identifier (16 hex chars).
	BridgeID string `json:"bridge_id"`

	// Host is the last known bridge address.
	Host string `json:"host"`

	// ModelID is the bridge hardware model, if known.
	ModelID string `json:"model_id,omitempty"`
}

// Store manages persistence of the saved bridge to a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save persists the bridge record to disk.
func (s *Store) Save(saved *SavedBridge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	saved.Version = StoreVersion
	if saved.SavedAt.IsZero() {
		saved.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the bridge record from disk.
// Returns nil, nil if the file doesn't exist.
func (s *Store) Load() (*SavedBridge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var saved SavedBridge
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Delete removes the saved record. Missing files are not an error.
func (s *Store) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
