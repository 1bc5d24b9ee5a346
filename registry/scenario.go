package registry

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"
)

// Registry errors, matched with errors.Is.
var (
	ErrNotFound        = errors.New("scenario not found")
	ErrExists          = errors.New("scenario already exists")
	ErrBuiltin         = errors.New("scenario is built in")
	ErrInvalidScenario = errors.New("invalid scenario")
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Scenario is a prompt with its candidate next tokens and their base logits.
type Scenario struct {
	ID      string    `toml:"id" json:"id"`
	Label   string    `toml:"label" json:"label"`
	Tokens  []string  `toml:"tokens" json:"tokens"`
	Logits  []float64 `toml:"logits" json:"logits"`
	AddedAt time.Time `toml:"added_at,omitempty" json:"added_at,omitempty"`
	Builtin bool      `toml:"-" json:"builtin"`
}

// Size returns the vocabulary size.
func (s Scenario) Size() int { return len(s.Tokens) }

// Validate checks that s can be fed to the distribution engine.
func (s *Scenario) Validate() error {
	if !idPattern.MatchString(s.ID) {
		return fmt.Errorf("%w: id %q must match %s", ErrInvalidScenario, s.ID, idPattern)
	}
	if len(s.Tokens) == 0 {
		return fmt.Errorf("%w: %s has no tokens", ErrInvalidScenario, s.ID)
	}
	if len(s.Tokens) != len(s.Logits) {
		return fmt.Errorf("%w: %s has %d tokens but %d logits", ErrInvalidScenario, s.ID, len(s.Tokens), len(s.Logits))
	}
	for i, l := range s.Logits {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return fmt.Errorf("%w: %s logit %d is not finite", ErrInvalidScenario, s.ID, i)
		}
	}
	return nil
}
