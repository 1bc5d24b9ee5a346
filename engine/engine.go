package engine

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalidInput reports a logit vector the engine cannot shape: mismatched
// lengths, an empty vocabulary, or a non-finite logit.
var ErrInvalidInput = errors.New("invalid input")

// TokenScore is one vocabulary entry fed into the engine.
type TokenScore struct {
	Token         string
	Logit         float64
	OriginalIndex int
}

// TokenResult is one vocabulary entry of the shaped distribution.
// Inactive entries stay in the output with zero probability.
type TokenResult struct {
	Token         string  `json:"token"`
	OriginalIndex int     `json:"original_index"`
	Probability   float64 `json:"probability"`
	Active        bool    `json:"active"`
}

// Engine computes shaped distributions. It holds no state; the zero value is
// ready to use and safe for concurrent calls.
type Engine struct{}

// New creates a new Engine.
func New() *Engine {
	return &Engine{}
}

// Compute shapes logits with p and returns one result per token in input order.
func (e *Engine) Compute(tokens []string, logits []float64, p Params) ([]TokenResult, error) {
	return Compute(tokens, logits, p)
}

// Compute shapes logits with p and returns one result per token in input order.
func Compute(tokens []string, logits []float64, p Params) ([]TokenResult, error) {
	if len(tokens) != len(logits) {
		return nil, fmt.Errorf("%w: %d tokens but %d logits", ErrInvalidInput, len(tokens), len(logits))
	}
	scores := make([]TokenScore, len(tokens))
	for i := range tokens {
		scores[i] = TokenScore{Token: tokens[i], Logit: logits[i], OriginalIndex: i}
	}
	return ComputeScores(scores, p)
}

// ComputeScores is Compute over pre-built scores. OriginalIndex must be a
// permutation of 0..len(scores)-1.
func ComputeScores(scores []TokenScore, p Params) ([]TokenResult, error) {
	n := len(scores)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInvalidInput)
	}
	seen := make([]bool, n)
	for _, s := range scores {
		if math.IsNaN(s.Logit) || math.IsInf(s.Logit, 0) {
			return nil, fmt.Errorf("%w: non-finite logit %v for token %q", ErrInvalidInput, s.Logit, s.Token)
		}
		if s.OriginalIndex < 0 || s.OriginalIndex >= n || seen[s.OriginalIndex] {
			return nil, fmt.Errorf("%w: bad original index %d", ErrInvalidInput, s.OriginalIndex)
		}
		seen[s.OriginalIndex] = true
	}
	p = p.Clamp(n)

	probs := softmax(scores, p.Temperature)

	ranked := make([]TokenResult, n)
	for i, s := range scores {
		ranked[i] = TokenResult{
			Token:         s.Token,
			OriginalIndex: s.OriginalIndex,
			Probability:   probs[i],
			Active:        true,
		}
	}
	slices.SortStableFunc(ranked, func(a, b TokenResult) int {
		if c := cmp.Compare(b.Probability, a.Probability); c != 0 {
			return c
		}
		return cmp.Compare(a.OriginalIndex, b.OriginalIndex)
	})

	truncate(ranked, p.TopK, p.TopP)
	renormalize(ranked)

	out := make([]TokenResult, n)
	for _, r := range ranked {
		out[r.OriginalIndex] = r
	}
	return out, nil
}

// softmax returns exp((logit-max)/temp) normalized over all scores.
func softmax(scores []TokenScore, temp float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, s := range scores {
		if s.Logit > maxLogit {
			maxLogit = s.Logit
		}
	}

	// subtracting max logit keeps every exponent <= 0
	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp((s.Logit - maxLogit) / temp)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// truncate deactivates ranked entries past rank topK or past the point where
// the cumulative mass of higher-ranked survivors has reached topP.
// The entry that crosses topP is kept. topP >= MaxTopP disables the nucleus
// cut, since a rounded cumulative sum can reach 1.0 early.
func truncate(ranked []TokenResult, topK int, topP float64) {
	nucleus := topP < MaxTopP
	var cum float64
	for i := range ranked {
		if i >= topK || (nucleus && !(cum < topP)) {
			ranked[i].Active = false
			ranked[i].Probability = 0
			continue
		}
		cum += ranked[i].Probability
	}
}

func renormalize(ranked []TokenResult) {
	var sum float64
	for _, r := range ranked {
		if r.Active {
			sum += r.Probability
		}
	}
	if sum <= 0 {
		return
	}
	for i := range ranked {
		if ranked[i].Active {
			ranked[i].Probability /= sum
		}
	}
}

// ActiveCount returns the number of active entries in results.
func ActiveCount(results []TokenResult) int {
	n := 0
	for _, r := range results {
		if r.Active {
			n++
		}
	}
	return n
}
