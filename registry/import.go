package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ReadFile parses a scenario from a .toml or .json file without storing it.
// A missing id defaults to the file name without its extension.
func ReadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var s Scenario
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q (want .toml or .json)", ErrInvalidScenario, ext)
	}

	if s.ID == "" {
		s.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Import reads a scenario file and adds it to the registry.
func (m *ScenarioManager) Import(path string) (*Scenario, error) {
	s, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := m.Add(s); err != nil {
		return nil, err
	}
	return m.Get(s.ID)
}
