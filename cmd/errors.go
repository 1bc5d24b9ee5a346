package cmd

import (
	"errors"

	"github.com/cloudchase/sampling-visualizer/registry"
)

// HintedError wraps an error with a user-facing recovery hint.
type HintedError struct {
	Err  error
	Hint string
}

func (h *HintedError) Error() string { return h.Err.Error() }
func (h *HintedError) Unwrap() error { return h.Err }

// hintWrap attaches a recovery hint to registry errors.
func hintWrap(err error) error {
	if err == nil {
		return nil
	}
	var hint string
	switch {
	case errors.Is(err, registry.ErrNotFound):
		hint = "Run 'sv list' to see available scenarios."
	case errors.Is(err, registry.ErrBuiltin):
		hint = "Built-in scenarios are read-only; add a copy under a new id with 'sv add <file>'."
	case errors.Is(err, registry.ErrExists):
		hint = "Remove the existing scenario with 'sv rm <id>' or choose another id."
	case errors.Is(err, registry.ErrInvalidScenario):
		hint = "A scenario needs a lowercase id and equal-length tokens and logits lists."
	default:
		return err
	}
	return &HintedError{Err: err, Hint: hint}
}
