package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// HomeEnv overrides the default base directory.
const HomeEnv = "SV_HOME"

// ScenarioManager combines the built-in catalogue with user scenarios on disk.
type ScenarioManager struct {
	store *Store
}

// NewScenarioManager creates a ScenarioManager and ensures the storage directories exist.
func NewScenarioManager(baseDir string) (*ScenarioManager, error) {
	store := NewStore(baseDir)
	if err := store.EnsureDirs(); err != nil {
		return nil, err
	}
	return &ScenarioManager{store: store}, nil
}

// DefaultBaseDir returns $SV_HOME, or ~/.sampling-visualizer when unset.
func DefaultBaseDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sampling-visualizer")
}

// List returns the built-in scenarios in catalogue order followed by user
// scenarios sorted by id.
func (m *ScenarioManager) List() ([]Scenario, error) {
	user, err := m.store.List()
	if err != nil {
		return nil, fmt.Errorf("list stored scenarios: %w", err)
	}
	return append(Builtins(), user...), nil
}

// Get retrieves a scenario by id.
func (m *ScenarioManager) Get(id string) (*Scenario, error) {
	if s, ok := builtin(id); ok {
		return s, nil
	}
	if !idPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m.store.Load(id)
}

// Add validates and stores a new user scenario.
func (m *ScenarioManager) Add(s *Scenario) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, ok := builtin(s.ID); ok {
		return fmt.Errorf("%w: %s", ErrBuiltin, s.ID)
	}
	if m.store.Exists(s.ID) {
		return fmt.Errorf("%w: %s", ErrExists, s.ID)
	}
	stored := *s
	stored.Builtin = false
	if stored.AddedAt.IsZero() {
		stored.AddedAt = time.Now().UTC().Truncate(time.Second)
	}
	return m.store.Save(&stored)
}

// Remove deletes a user scenario. Built-in scenarios cannot be removed.
func (m *ScenarioManager) Remove(id string) error {
	if _, ok := builtin(id); ok {
		return fmt.Errorf("%w: %s", ErrBuiltin, id)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m.store.Delete(id)
}
