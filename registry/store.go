package registry

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// Store manages on-disk storage for user scenarios.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// BaseDir returns the root directory of the store.
func (s *Store) BaseDir() string { return s.baseDir }

// ScenariosDir returns the directory where scenario files are stored.
func (s *Store) ScenariosDir() string { return filepath.Join(s.baseDir, "scenarios") }

// EnsureDirs creates the required directory structure if it does not exist.
func (s *Store) EnsureDirs() error {
	return os.MkdirAll(s.ScenariosDir(), 0755)
}

func (s *Store) path(id string) string {
	return filepath.Join(s.ScenariosDir(), id+".toml")
}

// Save writes a scenario to disk as TOML.
func (s *Store) Save(sc *Scenario) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(sc); err != nil {
		return fmt.Errorf("encode scenario %s: %w", sc.ID, err)
	}
	return os.WriteFile(s.path(sc.ID), buf.Bytes(), 0644)
}

// Load reads a scenario from disk by id.
func (s *Store) Load(id string) (*Scenario, error) {
	var sc Scenario
	if _, err := toml.DecodeFile(s.path(id), &sc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("decode scenario %s: %w", id, err)
	}
	return &sc, nil
}

// Exists reports whether a scenario file for id is present.
func (s *Store) Exists(id string) bool {
	_, err := os.Stat(s.path(id))
	return err == nil
}

// List returns all stored scenarios sorted by id. Unreadable files are skipped.
func (s *Store) List() ([]Scenario, error) {
	entries, err := os.ReadDir(s.ScenariosDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var scenarios []Scenario
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		id := e.Name()[:len(e.Name())-len(".toml")]
		sc, err := s.Load(id)
		if err != nil {
			continue
		}
		scenarios = append(scenarios, *sc)
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].ID < scenarios[j].ID })
	return scenarios, nil
}

// Delete removes a scenario file from disk.
func (s *Store) Delete(id string) error {
	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}
